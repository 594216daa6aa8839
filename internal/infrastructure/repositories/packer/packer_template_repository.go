package packer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/bugswarm/check-upstream/internal/domain/entities"
	"github.com/bugswarm/check-upstream/internal/domain/repositories"
)

const (
	blockBuild       = "build"
	blockProvisioner = "provisioner"
	attrScript       = "script"
	attrScripts      = "scripts"
)

// PathRoot is the literal Packer's `path.root` evaluates to while templates are
// read, so script paths keep their placeholder for the repository rewrite.
const PathRoot = "${path.root}"

// parseFunc is one of the hclparse entrypoints (native syntax or JSON).
type parseFunc func(parser *hclparse.Parser, src []byte, filename string) (*hcl.File, hcl.Diagnostics)

// TemplateRepository implements repositories.TemplateRepository for Packer HCL2 templates.
type TemplateRepository struct {
	parse parseFunc
}

// NewHCLTemplateRepository parses templates in native HCL syntax (*.pkr.hcl).
func NewHCLTemplateRepository() repositories.TemplateRepository {
	return &TemplateRepository{parse: (*hclparse.Parser).ParseHCL}
}

// NewJSONTemplateRepository parses templates in HCL's JSON syntax (*.pkr.json).
func NewJSONTemplateRepository() repositories.TemplateRepository {
	return &TemplateRepository{parse: (*hclparse.Parser).ParseJSON}
}

// ParseProvisioners returns the provisioners of the template's first build block.
func (it *TemplateRepository) ParseProvisioners(
	path, content string,
) ([]entities.ProvisioningStep, error) {
	src := []byte(content)

	file, diags := it.parse(hclparse.NewParser(), src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", entities.ErrTemplateParse, path, diags.Error())
	}

	//nolint:exhaustruct // only blocks are relevant
	rootContent, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: blockBuild}},
	})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", entities.ErrTemplateParse, path, diags.Error())
	}
	if len(rootContent.Blocks) == 0 {
		return nil, fmt.Errorf("%w: %s: no %q block", entities.ErrTemplateParse, path, blockBuild)
	}

	//nolint:exhaustruct // only blocks are relevant
	buildContent, _, diags := rootContent.Blocks[0].Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: blockProvisioner, LabelNames: []string{"type"}}},
	})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", entities.ErrTemplateParse, path, diags.Error())
	}
	if len(buildContent.Blocks) == 0 {
		return nil, fmt.Errorf("%w: %s: build has no %q blocks", entities.ErrTemplateParse, path, blockProvisioner)
	}

	steps := make([]entities.ProvisioningStep, 0, len(buildContent.Blocks))
	for _, block := range buildContent.Blocks {
		step := entities.ProvisioningStep{Type: block.Labels[0]}
		if step.IsShell() {
			if err := decodeShell(block, src, &step); err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %w",
					entities.ErrTemplateParse, path, block.DefRange.Start.Line, err)
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// decodeShell reads the `script` and `scripts` attributes of a shell provisioner.
func decodeShell(block *hcl.Block, src []byte, step *entities.ProvisioningStep) error {
	//nolint:exhaustruct // only attributes are relevant
	content, _, diags := block.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: attrScript}, {Name: attrScripts}},
	})
	if diags.HasErrors() {
		return diags
	}

	if attr, ok := content.Attributes[attrScript]; ok {
		script, err := stringValue(attr.Expr, src)
		if err != nil {
			return err
		}
		step.Script = script
	}

	if attr, ok := content.Attributes[attrScripts]; ok {
		elems, listDiags := hcl.ExprList(attr.Expr)
		if listDiags.HasErrors() {
			return listDiags
		}
		for _, elem := range elems {
			script, err := stringValue(elem, src)
			if err != nil {
				return err
			}
			step.Scripts = append(step.Scripts, script)
		}
	}
	return nil
}

// stringValue evaluates a script path expression with `path.root` bound to its
// placeholder. Expressions referencing anything else (variables, locals) fall back
// to their source text, the way Packer users read them.
func stringValue(expr hcl.Expression, src []byte) (string, error) {
	val, diags := expr.Value(evalContext())
	if !diags.HasErrors() && val.Type() == cty.String && val.IsKnown() && !val.IsNull() {
		return val.AsString(), nil
	}

	rng := expr.Range()
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.Start.Byte >= rng.End.Byte {
		return "", fmt.Errorf("cannot read expression at %s", rng)
	}
	return strings.Trim(string(src[rng.Start.Byte:rng.End.Byte]), `"`), nil
}

func evalContext() *hcl.EvalContext {
	//nolint:exhaustruct // no functions are available to templates here
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path": cty.ObjectVal(map[string]cty.Value{
				"root": cty.StringVal(PathRoot),
				"cwd":  cty.StringVal("${path.cwd}"),
			}),
		},
	}
}
