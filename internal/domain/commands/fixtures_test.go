//go:build unit

package commands_test

import (
	"github.com/bugswarm/check-upstream/internal/domain/entities"
	infraRepos "github.com/bugswarm/check-upstream/internal/infrastructure/repositories"
	packerRepo "github.com/bugswarm/check-upstream/internal/infrastructure/repositories/packer"
	doubles "github.com/bugswarm/check-upstream/test/infrastructure/repositorydoubles"
)

const (
	templatePath = "images/ubuntu/templates/ubuntu-22.04.pkr.hcl"
	toolsetPath  = "images/ubuntu/toolsets/toolset-2204.json"
	helpersDir   = "images/ubuntu/scripts/helpers"

	aptScript    = "images/ubuntu/scripts/build/configure-apt.sh"
	pythonScript = "images/ubuntu/scripts/build/install-python.sh"
	javaScript   = "images/ubuntu/scripts/build/install-java-tools.sh"
	helperScript = "images/ubuntu/scripts/helpers/install.sh"
)

const templateHCL = `
source "azure-arm" "build_image" {
  location = "East US"
}

build {
  sources = ["source.azure-arm.build_image"]

  provisioner "shell" {
    execute_command = "sudo sh -c '{{ .Vars }} {{ .Path }}'"
    inline          = ["mkdir ${var.image_folder}"]
  }

  provisioner "file" {
    destination = "${var.helper_script_folder}"
    source      = "${path.root}/../scripts/helpers"
  }

  provisioner "shell" {
    script = "${path.root}/../scripts/build/configure-apt.sh"
  }

  provisioner "shell" {
    scripts = [
      "${path.root}/../scripts/build/install-python.sh",
      "${path.root}/../scripts/build/install-java-tools.sh",
    ]
  }
}
`

const (
	pythonSource = `#!/bin/bash -e
source $HELPER_SCRIPTS/install.sh
version=$(get_toolset_value '.python.version')
apt-get install -y "python${version}"
`
	javaSource = `#!/bin/bash -e
default=$(get_toolset_value ".java.default")
versions=$(get_toolset_value '.java.versions[]')
`
	aptSource    = "#!/bin/bash -e\necho 'APT::Acquire::Retries \"10\";' > /etc/apt/apt.conf.d/80-retries\n"
	helperSource = "get_toolset_value() {\n  jq -r \"$1\" \"$INSTALLER_SCRIPT_FOLDER/toolset.json\"\n}\n"
)

// forkFiles stores the template, scripts and helpers of a fork release at commit.
func forkFiles(source *doubles.StubSourceRepository, commit entities.Commit) *doubles.StubSourceRepository {
	return source.
		WithFile(commit, templatePath, templateHCL).
		WithFile(commit, aptScript, aptSource).
		WithFile(commit, pythonScript, pythonSource).
		WithFile(commit, javaScript, javaSource).
		WithFile(commit, helperScript, helperSource)
}

func templateRegistry() *infraRepos.TemplateRegistry {
	registry := infraRepos.NewTemplateRegistry()
	registry.Register(".hcl", packerRepo.NewHCLTemplateRepository())
	registry.Register(".json", packerRepo.NewJSONTemplateRepository())
	return registry
}
