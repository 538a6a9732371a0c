package services

import (
	"delivery-route-service/internal/domain"
	"fmt"
)

// RemoveStop returns current without orderID.
//
// An explicit route must keep at least one stop: removing the last one fails
// with domain.ErrLastStop. current is never modified.
func RemoveStop(current []int, orderID int) ([]int, error) {
	next := make([]int, 0, len(current))
	found := false
	for _, id := range current {
		if id == orderID {
			found = true
			continue
		}
		next = append(next, id)
	}

	if !found {
		return nil, fmt.Errorf("remove stop %d: %w", orderID, domain.ErrStopNotInRoute)
	}
	if len(next) == 0 {
		return nil, fmt.Errorf("remove stop %d: %w", orderID, domain.ErrLastStop)
	}

	return next, nil
}
