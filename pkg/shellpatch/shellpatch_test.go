package shellpatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendOnce(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		marker      string
		block       string
		want        string
		wantChanged bool
	}{
		{
			name:        "append to empty content",
			content:     "",
			marker:      "# workbench: pyenv",
			block:       "# workbench: pyenv\nexport PYENV_ROOT=1",
			want:        "\n# workbench: pyenv\nexport PYENV_ROOT=1\n",
			wantChanged: true,
		},
		{
			name:        "append with blank line separator",
			content:     "export EDITOR=vi\n",
			marker:      "# workbench: pyenv",
			block:       "# workbench: pyenv\nexport PYENV_ROOT=1",
			want:        "export EDITOR=vi\n\n# workbench: pyenv\nexport PYENV_ROOT=1\n",
			wantChanged: true,
		},
		{
			name:        "content without trailing newline",
			content:     "export EDITOR=vi",
			marker:      "# m",
			block:       "# m",
			want:        "export EDITOR=vi\n\n# m\n",
			wantChanged: true,
		},
		{
			name:        "marker already present is a no-op",
			content:     "a\n# workbench: pyenv\nb\n",
			marker:      "# workbench: pyenv",
			block:       "# workbench: pyenv\nsomething else",
			want:        "a\n# workbench: pyenv\nb\n",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := AppendOnce(tt.content, tt.marker, tt.block)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestAppendOnceConverges(t *testing.T) {
	content := "export EDITOR=vi\n"
	marker := "# workbench: conda"
	block := "# workbench: conda\n. conda.sh"

	once, changed := AppendOnce(content, marker, block)
	assert.True(t, changed)

	// N applications must be byte-identical to one.
	current := once
	for i := 0; i < 5; i++ {
		next, changed := AppendOnce(current, marker, block)
		assert.False(t, changed)
		assert.Equal(t, once, next)
		current = next
	}
}

func TestReplaceLine(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		key         string
		line        string
		want        string
		wantChanged bool
	}{
		{
			name:        "rewrites matching line in place",
			content:     "# header\nTHEME=old\ntrailer\n",
			key:         "THEME=",
			line:        "THEME=new",
			want:        "# header\nTHEME=new\ntrailer\n",
			wantChanged: true,
		},
		{
			name:        "appends when key is missing",
			content:     "# header\n",
			key:         "THEME=",
			line:        "THEME=new",
			want:        "# header\nTHEME=new\n",
			wantChanged: true,
		},
		{
			name:        "empty content gets just the line",
			content:     "",
			key:         "plugins=",
			line:        "plugins=(git)",
			want:        "plugins=(git)\n",
			wantChanged: true,
		},
		{
			name:        "identical line is a no-op",
			content:     "THEME=new\n",
			key:         "THEME=",
			line:        "THEME=new",
			want:        "THEME=new\n",
			wantChanged: false,
		},
		{
			name:        "only first match is rewritten",
			content:     "THEME=a\nTHEME=b\n",
			key:         "THEME=",
			line:        "THEME=c",
			want:        "THEME=c\nTHEME=b\n",
			wantChanged: true,
		},
		{
			name:        "no trailing newline preserved on rewrite",
			content:     "THEME=old",
			key:         "THEME=",
			line:        "THEME=new",
			want:        "THEME=new",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ReplaceLine(tt.content, tt.key, tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestReplaceLinePreservesUnrelatedContent(t *testing.T) {
	content := "# one\nexport A=1\nZSH_THEME=\"robbyrussell\"\nexport B=2\n# last\n"
	got, changed := ReplaceLine(content, "ZSH_THEME=", `ZSH_THEME="powerlevel10k/powerlevel10k"`)
	assert.True(t, changed)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Equal(t, "# one", lines[0])
	assert.Equal(t, "export A=1", lines[1])
	assert.Equal(t, `ZSH_THEME="powerlevel10k/powerlevel10k"`, lines[2])
	assert.Equal(t, "export B=2", lines[3])
	assert.Equal(t, "# last", lines[4])
}

func TestReplaceLineConverges(t *testing.T) {
	once, changed := ReplaceLine("THEME=old\nother\n", "THEME=", "THEME=new")
	assert.True(t, changed)

	current := once
	for i := 0; i < 5; i++ {
		next, changed := ReplaceLine(current, "THEME=", "THEME=new")
		assert.False(t, changed)
		assert.Equal(t, once, next)
		current = next
	}
}
