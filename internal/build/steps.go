package build

import "strings"

// Returns the package-manager invocation for the system package step.
//
// The manifest may override the default apt-get invocation with its own
// template; {packages} expands to the space-separated package list.
func packagesCommand(template string, packages []string) string {
	if template == "" {
		return aptCommand(packages)
	}
	return strings.ReplaceAll(template, "{packages}", strings.Join(packages, " "))
}

// Rendered apt-get invocation for the system package step.
//
// Debian-family bases are assumed; the apt lists are removed afterwards so
// they never land in the cached layer.
func aptCommand(packages []string) string {
	var b strings.Builder
	b.WriteString("apt-get update && apt-get install -y --no-install-recommends")
	for _, pkg := range packages {
		b.WriteString(" ")
		b.WriteString(pkg)
	}
	b.WriteString(" && rm -rf /var/lib/apt/lists/*")
	return b.String()
}

// Expands the {manifest} placeholder in the dependency install command to
// the in-container manifest filename.
func renderInstall(install, manifestName string) string {
	return strings.ReplaceAll(install, "{manifest}", manifestName)
}
