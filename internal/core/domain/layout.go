package domain

const (
	// JSONConfigFileName is the name of the JSON project configuration file.
	JSONConfigFileName = "bundler.json"

	// YAMLConfigFileName is the name of the YAML project configuration file.
	YAMLConfigFileName = "bundler.yaml"

	// YMLConfigFileName is the short-extension variant of YAMLConfigFileName.
	YMLConfigFileName = "bundler.yml"

	// BundleFileName is the name of the artifact written to the output directory.
	BundleFileName = "index.js"

	// ManifestFileName is the name of a package manifest.
	ManifestFileName = "package.json"

	// NodeModulesDirName is the directory packages are installed into.
	NodeModulesDirName = "node_modules"

	// RuntimeFileName is the name reported to the transformer for the runtime preamble.
	RuntimeFileName = "runtime.js"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ConfigFileNames lists the configuration files looked up in a working directory, in priority order.
func ConfigFileNames() []string {
	return []string{JSONConfigFileName, YAMLConfigFileName, YMLConfigFileName}
}
