// Package policy reads the version injection policy and the skip and hide lists.
package policy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PolicyLoader = (*Loader)(nil)

// Element names of the version injection policy.
const (
	elemInterfaceVersion = "interface-version"
	elemDefaultVersion   = "default-version"
	elemPackage          = "package"
)

// Loader implements ports.PolicyLoader over XML documents.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadVersionPolicy reads the directives under the document root in order.
// Unknown elements are ignored. A missing file yields a nil policy.
func (l *Loader) LoadVersionPolicy(path string) (*domain.VersionPolicy, error) {
	policy := &domain.VersionPolicy{}
	found, err := l.walkChildren(path, func(dec *xml.Decoder, el *xml.StartElement) error {
		d, ok, err := decodeDirective(dec, el)
		if err != nil {
			return err
		}
		if ok {
			policy.Directives = append(policy.Directives, d)
		}
		return nil
	})
	if err != nil || !found {
		return nil, err
	}
	return policy, nil
}

// LoadNameList reads the name attribute of every package element under the root.
// A missing file yields an empty set.
func (l *Loader) LoadNameList(path string) (domain.NameSet, error) {
	names := domain.NewNameSet()
	_, err := l.walkChildren(path, func(dec *xml.Decoder, el *xml.StartElement) error {
		if el.Name.Local == elemPackage {
			if name := attr(el, "name"); name != "" {
				names[name] = struct{}{}
			}
		}
		return dec.Skip()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// walkChildren calls fn for each direct child element of the document root.
// fn must consume the element through its end tag.
func (l *Loader) walkChildren(path string, fn func(*xml.Decoder, *xml.StartElement) error) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(fmt.Errorf("%w: %w", domain.ErrInvalidPolicy, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	dec := xml.NewDecoder(f)
	depth := 0
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, zerr.With(fmt.Errorf("%w: %w", domain.ErrInvalidPolicy, err), "path", path)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				sawRoot = true
				depth++
				continue
			}
			if err := fn(dec, &t); err != nil {
				if !errors.Is(err, domain.ErrInvalidPolicy) {
					err = fmt.Errorf("%w: %w", domain.ErrInvalidPolicy, err)
				}
				return false, zerr.With(err, "path", path)
			}
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return false, zerr.With(zerr.Wrap(domain.ErrInvalidPolicy, "document has no root element"), "path", path)
	}
	return true, nil
}

func decodeDirective(dec *xml.Decoder, el *xml.StartElement) (domain.Directive, bool, error) {
	switch el.Name.Local {
	case elemInterfaceVersion:
		var text string
		if err := dec.DecodeElement(&text, el); err != nil {
			return domain.Directive{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidPolicy, err)
		}
		return domain.Directive{Kind: domain.DirectiveInterfaceVersion, Version: strings.TrimSpace(text)}, true, nil

	case elemDefaultVersion:
		d := domain.Directive{Kind: domain.DirectiveDefaultVersion, Version: attr(el, "version")}
		return d, true, dec.Skip()

	case elemPackage:
		d := domain.Directive{
			Kind:          domain.DirectivePackage,
			Name:          attr(el, "name"),
			Version:       attr(el, "version"),
			License:       attr(el, "license"),
			VersionSource: attr(el, "version-src"),
		}
		if d.Name == "" {
			return d, false, zerr.Wrap(domain.ErrInvalidPolicy, "package directive without name")
		}
		if v, ok := lookupAttr(el, "version-from-package-files"); ok {
			fromFiles := true
			if v = strings.TrimSpace(v); v != "" {
				var err error
				if fromFiles, err = strconv.ParseBool(v); err != nil {
					return d, false, zerr.With(zerr.Wrap(domain.ErrInvalidPolicy,
						"version-from-package-files is not a boolean"), "package", d.Name)
				}
			}
			d.VersionFromPackageFiles = fromFiles
		}
		if v, ok := lookupAttr(el, "exactmatch"); ok {
			exact, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return d, false, zerr.With(zerr.Wrap(domain.ErrInvalidPolicy, "exactmatch is not a boolean"), "package", d.Name)
			}
			d.ExactMatch = exact
		}
		return d, true, dec.Skip()

	default:
		return domain.Directive{}, false, dec.Skip()
	}
}

func attr(el *xml.StartElement, name string) string {
	v, _ := lookupAttr(el, name)
	return v
}

func lookupAttr(el *xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
