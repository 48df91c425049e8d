package project

// artifactNames is the closed set of directory names that trigger
// structural verification. Matching a name here is necessary but never
// sufficient to accept a directory as bloat (§4.3).
var artifactNames = map[string]bool{
	"node_modules": true,
	"target":       true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"vendor":       true,
	"build":        true,
	"dist":         true,
	".gradle":      true,
	"DerivedData":  true,
	"bin":          true,
	"obj":          true,
}

// unconditionalNames are accepted on name match alone — no sibling manifest
// check, since the name itself is effectively unambiguous.
var unconditionalNames = map[string]bool{
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"vendor":       true,
}

// rustManifests are sibling files that make a `target` directory a Cargo
// build output.
var rustManifests = []string{"Cargo.toml"}

// jvmManifests are sibling files that make a `target` directory a Maven
// build output. A `.gradle` directory is verified by jvmGradleGlobs alone.
var jvmManifests = []string{"pom.xml"}

// jvmGradleGlobs are glob patterns (relative to the candidate's parent) for
// Gradle build files, which carry a version-y suffix (build.gradle.kts).
var jvmGradleGlobs = []string{"build.gradle*", "settings.gradle*"}

// buildDistManifests are sibling files that make a `build` or `dist`
// directory a recognized language/build-tool output.
var buildDistManifests = []string{"package.json", "pyproject.toml", "setup.py"}

// buildDistGlobs mirrors buildDistManifests for glob-shaped names.
var buildDistGlobs = []string{"build.gradle*", "pom.xml"}

// buildDistLockfiles are recognized build-tool lockfiles that also make a
// `build` or `dist` directory verified, independent of whether its
// manifest is present (§4.3 "a sibling manifest ... or a recognized
// build-tool lockfile").
var buildDistLockfiles = []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "Cargo.lock"}

// dotnetGlobs are sibling globs that make a `bin` or `obj` directory a
// .NET build output.
var dotnetGlobs = []string{"*.csproj", "*.sln"}
