package service

import (
	"errors"

	"github.com/MKhiriev/go-bizsync/internal/engine"
)

var (
	// ErrUnknownResource is returned for a resource name no manager serves.
	ErrUnknownResource = engine.ErrUnknownResource

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
