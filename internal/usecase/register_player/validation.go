package register_player

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Sport.IsValid() {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, req.Sport)
	}

	if !req.Sport.IsValidGroup(req.Group) {
		return fmt.Errorf("%w: bad group %q for sport %s", ErrInvalidInput, req.Group, req.Sport)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.RawPhone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	return nil
}
