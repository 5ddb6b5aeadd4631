package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/packager/internal/core/domain"
	"go.trai.ch/packager/internal/core/ports"
	"go.trai.ch/zerr"
)

// InferDependencies adds the dependencies implied by references between packaged binaries.
// A reference to a module that no package ships fails the stage.
func (r *Run) InferDependencies(_ context.Context, v ports.Vertex) error {
	cfg := r.opts.Config
	modules := domain.NewModuleReferenceGraph()
	for _, file := range r.inventory.Claimed() {
		if !domain.IsBinary(file, cfg.BinaryExtensions) {
			continue
		}
		meta := r.inspect(file)
		if meta == nil || meta.ModuleName == "" {
			continue
		}
		owner, _ := r.inventory.Owner(file)
		modules.Add(meta.ModuleName, owner, meta.References)
	}

	for _, module := range modules.Modules() {
		owner, _ := modules.Owner(module)
		build := r.builds[owner]
		for _, ref := range modules.References(module) {
			if cfg.Runtime.IsRuntime(ref) {
				continue
			}
			target, ok := modules.Owner(ref)
			if !ok || r.builds[target] == nil {
				err := zerr.Wrap(domain.ErrUnpackagedModule,
					fmt.Sprintf("module %q of package %q references %q", module, owner, ref))
				err = zerr.With(fmt.Errorf("%w: %w", domain.ErrBinaryResolution, err), "module", module)
				return zerr.With(err, "reference", ref)
			}
			if target == owner || build.HasDependency(target) {
				continue
			}
			build.SetDependency(target, "")
			v.Log(fmt.Sprintf("%s depends on %s via %s", owner, target, ref))
		}
	}

	return nil
}
