package asset

import (
	"errors"
	"fmt"
)

// Sentinel errors for asset validation failures
var (
	ErrInvalidAsset    = errors.New("invalid asset")
	ErrUnsupportedType = errors.New("unsupported asset type")
)

// InvalidAssetError reports a record that cannot become a descriptor under the strict policy
type InvalidAssetError struct {
	Field  string
	Reason string
}

func (e *InvalidAssetError) Error() string {
	return fmt.Sprintf("invalid asset: %s %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidAsset)
func (e *InvalidAssetError) Unwrap() error {
	return ErrInvalidAsset
}

// UnsupportedAssetTypeError reports an asset type with no rendering strategy
type UnsupportedAssetTypeError struct {
	Type Type
}

func (e *UnsupportedAssetTypeError) Error() string {
	return fmt.Sprintf("unsupported asset type: %q", string(e.Type))
}

// Unwrap allows errors.Is(err, ErrUnsupportedType)
func (e *UnsupportedAssetTypeError) Unwrap() error {
	return ErrUnsupportedType
}
