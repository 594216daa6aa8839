package entities

// ShellProvisioner is the provisioner type whose scripts are build dependencies.
const ShellProvisioner = "shell"

// ProvisioningStep is one provisioner declared inside a template's build block.
type ProvisioningStep struct {
	Type    string   // provisioner label, e.g. "shell" or "file"
	Script  string   // single `script` attribute, if set
	Scripts []string // `scripts` list, if set
}

// IsShell reports whether the step runs shell scripts.
func (s ProvisioningStep) IsShell() bool {
	return s.Type == ShellProvisioner
}

// ScriptPaths returns `script` when present, otherwise every entry of `scripts`.
func (s ProvisioningStep) ScriptPaths() []string {
	if s.Script != "" {
		return []string{s.Script}
	}
	return s.Scripts
}
