package cms

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlug is returned without contacting backend when slug is empty.
	ErrInvalidSlug = errors.New("invalid writing slug")
	// ErrNotFound means backend answered but has no writing with such slug.
	ErrNotFound = errors.New("writing not found")
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("backend request failed")
	// ErrImageLoad matches every *ImageLoadError.
	ErrImageLoad = errors.New("image failed to load")
)

// NetworkError describes failed backend exchange: transport error, non
// successful status or unusable response body.
type NetworkError struct {
	Slug   string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("unable to fetch writing %q: status %d: %v", e.Slug, e.Status, e.Err)
	}
	return fmt.Sprintf("unable to fetch writing %q: %v", e.Slug, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ImageLoadError is result of failed image probe.
type ImageLoadError struct {
	URL    string
	Status int
	Err    error
}

func (e *ImageLoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("image %q failed to load: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("image %q failed to load: %v", e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

func (e *ImageLoadError) Is(target error) bool { return target == ErrImageLoad }

// Kind classifies fetch error for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidSlug):
		return "invalid-slug"
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrImageLoad):
		return "image"
	}
	return "other"
}
