package app_test

import (
	"testing"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/platform"
	"github.com/stretchr/testify/assert"
)

func TestExecutableName_platformName(t *testing.T) {
	name := app.ExecutableName("go")
	assert.Equal(t, "go", name.PlatformName(platform.Linux))
	assert.Equal(t, "go", name.PlatformName(platform.MacOS))
	assert.Equal(t, "go.exe", name.PlatformName(platform.Windows))
}

func TestBinFolder_root(t *testing.T) {
	bin := app.Root()
	assert.Equal(t, "/yard/actionlint/1.6.26/actionlint", bin.ExecutablePath("/yard/actionlint/1.6.26", "actionlint"))
}

func TestBinFolder_subfolder(t *testing.T) {
	bin := app.Subfolder("go/bin")
	assert.Equal(t, "/yard/go/1.21.5/go/bin/go", bin.ExecutablePath("/yard/go/1.21.5", "go"))
}

func TestInstallMethod_name(t *testing.T) {
	m := app.DownloadArchive("https://example.com/a.tar.gz", app.Root())
	assert.Equal(t, "download archive for actionlint@1.6.26", m.Name("actionlint", "1.6.26"))

	compile := app.CompileGoSource("github.com/rhysd/actionlint/cmd/actionlint@v1.6.26")
	assert.Equal(t, "compile actionlint@1.6.26 from source", compile.Name("actionlint", "1.6.26"))
}

func TestRunMethod_variants(t *testing.T) {
	this := app.ThisApp(app.DownloadArchive("https://example.com/a.tar.gz", app.Root()))
	assert.Equal(t, app.RunThisApp, this.Kind)
	assert.Len(t, this.InstallMethods, 1)

	other := app.OtherAppOtherExecutable("node", "npx")
	assert.Equal(t, app.RunOtherAppOtherExecutable, other.Kind)
	assert.Equal(t, "node", other.CarrierApp)

	def := app.OtherAppDefaultExecutable("node", "../lib/node_modules/npm/bin/npm-cli.js")
	assert.Equal(t, app.RunOtherAppDefaultExecutable, def.Kind)
	assert.Equal(t, []string{"../lib/node_modules/npm/bin/npm-cli.js"}, def.Args)
}
