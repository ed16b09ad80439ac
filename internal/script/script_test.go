package script

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFSAndExecute(t *testing.T) {
	fsys := fstest.MapFS{
		"greet.tmpl": {Data: []byte(`var src = "{{js .Source}}";`)},
	}
	set, err := ParseFS(fsys, "*.tmpl")
	require.NoError(t, err)

	out, err := set.Execute("greet.tmpl", M{"Source": `/logs "x"`})
	require.NoError(t, err)
	assert.Equal(t, `var src = "/logs \"x\"";`, out)

	_, err = set.Execute("missing.tmpl", nil)
	assert.Error(t, err)
	assert.Panics(t, func() { set.MustExecute("missing.tmpl", nil) })
}

func TestEmbeddedMainScript(t *testing.T) {
	scripts = nil
	defer func() { scripts = nil }()

	_, err := Execute("main.js.tmpl", nil)
	assert.Error(t, err, "execute before parse")

	require.NoError(t, Parse())
	assert.Panics(t, func() { _ = Parse() }, "second parse")

	out := MustExecute("main.js.tmpl", M{"Source": "/api/v1/logs/table", "PageLength": 25})
	assert.Contains(t, out, `"sAjaxSource": "/api/v1/logs/table"`)
	assert.Contains(t, out, `"iDisplayLength": 25,`)
	assert.Contains(t, out, `"sAjaxDataProp": "Data"`)
	assert.Contains(t, out, `"tableId"`)
}
