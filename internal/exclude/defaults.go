package exclude

// DefaultExclusions returns the built-in exclusion rules, meant for
// WithDefaults. Directory names are written with surrounding slashes so they
// only match whole path segments; the rest must match the end of the path.
func DefaultExclusions() []string {
	return []string{
		// tooling and VCS
		"/node_modules/", "/.git/", "/.vscode/", "/.venv/", "/venv/", "/env/",
		"/__pycache__/", "/.pytest_cache/", "/.mypy_cache/", "/.tox/", "/.coverage",
		"/.cache/", "/.vs/", "/.idea/", "/.history/", "/.next/", "/.gradle/",
		"/.ipynb_checkpoints/",
		// build output and scratch directories
		"/build/", "/dist/", "/bin/", "/obj/", "/packages/", "/lib/", "/include/",
		"/target/", "/out/", "/backup/", "/temp/", "/tmp/", "/logs/", "/test/",
		"/downloads/", "/releases/",
		// binaries and archives
		"*.exe", "*.dll", "*.so", "*.dylib", "*.whl", "*.egg", "*.egg-info",
		"*.pyc", "*.pkl", "*.zip", "*.tar", "*.gz", "*.tgz", "*.bz2", "*.xz",
		"*.7z", "*.rar",
		// locks, logs and editor leftovers
		"*.lock", "*.log", "*.bak", "*.tmp", "*.swp", "*.swo", "*.swn", "*.old",
	}
}
