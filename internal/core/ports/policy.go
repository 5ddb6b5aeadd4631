package ports

import "go.trai.ch/packager/internal/core/domain"

// PolicyLoader reads the optional version injection policy and package lists.
//
//go:generate mockgen -source=policy.go -destination=mocks/mock_policy.go -package=mocks
type PolicyLoader interface {
	// LoadVersionPolicy returns nil without error if the file does not exist.
	LoadVersionPolicy(path string) (*domain.VersionPolicy, error)
	// LoadNameList returns an empty set without error if the file does not exist.
	LoadNameList(path string) (domain.NameSet, error)
}
