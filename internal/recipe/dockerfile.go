// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	"fmt"
	"strings"
)

// Dockerfile renders the recipe as Dockerfile text. Step order is fixed:
// FROM, LABEL, ENV, mirror substitution, installer pin, WORKDIR, manifest
// copy, dependency install, full source copy. Optional steps render nothing
// when their fields are empty.
func (r Recipe) Dockerfile() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FROM %s\n\n", r.BaseImage)

	if r.Maintainer != "" {
		fmt.Fprintf(&sb, "LABEL maintainer=%q\n\n", r.Maintainer)
	}

	for _, e := range r.Env {
		fmt.Fprintf(&sb, "ENV %s=%q\n", e.Name, e.Value)
	}
	if len(r.Env) > 0 {
		sb.WriteString("\n")
	}

	if r.Mirror.From != "" && r.Mirror.To != "" {
		sb.WriteString("# Repoint the package mirror before any install step\n")
		fmt.Fprintf(&sb, "RUN sed -i 's/%s/%s/g' %s\n\n", r.Mirror.From, r.Mirror.To, r.Mirror.SourcesFile)
	}

	if r.InstallerPackage != "" && r.InstallerVersion != "" {
		fmt.Fprintf(&sb, "RUN %s install %s==%s\n\n", r.InstallerPackage, r.InstallerPackage, r.InstallerVersion)
	}

	fmt.Fprintf(&sb, "WORKDIR %s\n\n", r.WorkDir)

	if r.ManifestFile != "" {
		sb.WriteString("# Dependency layer caches independently of source changes\n")
		fmt.Fprintf(&sb, "COPY %s %s/\n", r.ManifestFile, r.WorkDir)
		if r.InstallCommand != "" {
			fmt.Fprintf(&sb, "RUN %s\n", r.InstallCommand)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "COPY . %s\n", r.WorkDir)

	return sb.String()
}
