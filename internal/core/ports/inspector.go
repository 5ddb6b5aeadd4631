package ports

import "go.trai.ch/packager/internal/core/domain"

// BinaryInspector extracts module metadata from a compiled binary.
// Callers treat any error as "no metadata".
//
//go:generate mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type BinaryInspector interface {
	Inspect(path string) (*domain.BinaryMetadata, error)
}
