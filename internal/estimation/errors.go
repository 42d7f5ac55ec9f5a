package estimation

import (
	"errors"
	"fmt"

	"cropwise/estimation-backend/internal/catalog"
)

// ErrUnknownCrop matches any UnknownCropError via errors.Is
var ErrUnknownCrop = errors.New("unknown crop")

// ValidationError reports a farm input that was rejected before scoring
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnknownCropError is returned when a crop is absent from the catalog
type UnknownCropError struct {
	Name string
}

func (e *UnknownCropError) Error() string {
	return fmt.Sprintf("unknown crop: %s", e.Name)
}

// Is lets errors.Is match both ErrUnknownCrop and catalog.ErrNotFound
func (e *UnknownCropError) Is(target error) bool {
	return target == ErrUnknownCrop || target == catalog.ErrNotFound
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
