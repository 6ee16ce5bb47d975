package models

import "github.com/amirsdt/SCC-ReservationService/internal/domain"

// AddPlayerRequest запрос на добавление игрока в состав
type AddPlayerRequest struct {
	Sport domain.Sport
	Group string
	Phone string
	Name  string
}

// RemovePlayerRequest запрос на удаление игрока из состава
type RemovePlayerRequest struct {
	Sport domain.Sport
	Group string
	Phone string
}

// PlayerResponse игрок состава
type PlayerResponse struct {
	Sport domain.Sport
	Group string
	Phone string
	Name  string
}

// GroupRoster срез состава одного раздела (спорт, группа).
// Players содержит не больше displayLimit первых игроков, Total - полный размер
type GroupRoster struct {
	Group   string
	Total   int
	Players []PlayerResponse
}

// RosterResponse состав одного вида спорта по разделам
type RosterResponse struct {
	Sport  domain.Sport
	Groups []GroupRoster
}

// FromDomainPlayer конвертирует доменного игрока в ответ сервиса
func FromDomainPlayer(p *domain.Player) *PlayerResponse {
	return &PlayerResponse{
		Sport: p.Sport,
		Group: p.Group,
		Phone: p.Phone,
		Name:  p.Name,
	}
}
