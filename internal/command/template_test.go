package command

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_Valid(t *testing.T) {
	tpl, err := ParseTemplate("upscaler -i {input} -o {output} -s {scale}")
	require.NoError(t, err)
	assert.Equal(t, "upscaler", tpl.Tool())
}

func TestParseTemplate_AllPlaceholders(t *testing.T) {
	_, err := ParseTemplate("tool {input} {output} {scale} {kind} {width} {height}")
	require.NoError(t, err)
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing input", "tool -o {output}"},
		{"missing output", "tool -i {input}"},
		{"unknown placeholder", "tool -i {input} -o {output} --gpu {device}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadTemplate), "want ErrBadTemplate, got %v", err)
		})
	}
}

func TestRender_Substitution(t *testing.T) {
	tpl, err := ParseTemplate("upscaler -i {input} -o {output} -s {scale} --kind {kind} --size {width}x{height}")
	require.NoError(t, err)

	argv := tpl.Render(Substitution{
		Input: "/in/wall.dds", Output: "/out/wall.dds",
		Scale: 4, Kind: "color", Width: 256, Height: 128,
	})
	want := []string{"upscaler", "-i", "/in/wall.dds", "-o", "/out/wall.dds",
		"-s", "4", "--kind", "color", "--size", "256x128"}
	assert.Equal(t, want, argv)
}

func TestRender_SpacedPathsStaySingleArgs(t *testing.T) {
	tpl, err := ParseTemplate("upscaler {input} {output}")
	require.NoError(t, err)

	argv := tpl.Render(Substitution{Input: "/in/My Textures/a.dds", Output: "/out dir/a.dds"})
	require.Len(t, argv, 3)
	assert.Equal(t, "/in/My Textures/a.dds", argv[1])
	assert.Equal(t, "/out dir/a.dds", argv[2])
}

func TestRender_EqualsStyleFlag(t *testing.T) {
	tpl, err := ParseTemplate("tool --in={input} --out={output}")
	require.NoError(t, err)

	argv := tpl.Render(Substitution{Input: "a.dds", Output: "b.dds"})
	assert.Equal(t, []string{"tool", "--in=a.dds", "--out=b.dds"}, argv)
}

func TestEnv_FallbackChannel(t *testing.T) {
	env := Env(Substitution{
		Input: "/in/a.dds", Output: "/out/a.dds",
		Scale: 2, Kind: "normal", Width: 1024, Height: 512,
	})
	assert.Contains(t, env, "TEXFORGE_INPUT=/in/a.dds")
	assert.Contains(t, env, "TEXFORGE_OUTPUT=/out/a.dds")
	assert.Contains(t, env, "TEXFORGE_SCALE=2")
	assert.Contains(t, env, "TEXFORGE_KIND=normal")
	assert.Contains(t, env, "TEXFORGE_WIDTH=1024")
	assert.Contains(t, env, "TEXFORGE_HEIGHT=512")
}

func TestSystemExecutor_ExitCodes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	ex := SystemExecutor{}

	res := ex.Run(context.Background(), []string{"sh", "-c", "echo hello"}, nil)
	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, strings.Contains(res.Output, "hello"))

	res = ex.Run(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 3"}, nil)
	require.Error(t, res.Err)
	assert.Equal(t, 3, res.ExitCode)
	assert.True(t, strings.Contains(res.Output, "oops"), "stderr should be captured: %q", res.Output)
}

func TestSystemExecutor_EnvPassthrough(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	ex := SystemExecutor{}
	res := ex.Run(context.Background(),
		[]string{"sh", "-c", "printf %s \"$TEXFORGE_SCALE\""},
		Env(Substitution{Scale: 4}))
	require.NoError(t, res.Err)
	assert.Equal(t, "4", res.Output)
}

func TestSystemExecutor_Cancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sleep")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := SystemExecutor{}.Run(ctx, []string{"sleep", "60"}, nil)
	require.Error(t, res.Err)
}
