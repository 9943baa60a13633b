package actions_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/actions"
	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
	"github.com/arthur-debert/pkgactions/pkg/output"
	"github.com/arthur-debert/pkgactions/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pkgName = "acme/pkg"

func newEnv(t *testing.T, envType testutil.EnvType, files map[string]string) (*testutil.ProjectEnvironment, *actions.Env, *output.Buffer) {
	t.Helper()

	project := testutil.NewProjectEnvironment(t, envType).WithPackage(pkgName, nil, files)
	buf := output.NewBuffer()
	env := &actions.Env{
		FS:          project.FS,
		IO:          buf,
		ProjectRoot: project.Root,
		Package:     pkgName,
		InstallPath: project.PackageDir(pkgName),
		Options:     actions.DefaultOptions(),
	}
	return project, env, buf
}

func entry(action string, args interface{}) manifest.Entry {
	return manifest.Entry{Action: action, Package: pkgName, Args: args}
}

func TestParseActionType(t *testing.T) {
	tests := []struct {
		name   string
		want   actions.ActionType
		wantOK bool
	}{
		{"copy", actions.ActionCopy, true},
		{"remove", actions.ActionRemove, true},
		{"create", actions.ActionCreate, true},
		{"symlink", actions.ActionSymlink, true},
		{"Copy", 0, false},
		{"chmod", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := actions.ParseActionType(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.name, got.String())
			}
		})
	}
}

func TestActionTypes(t *testing.T) {
	assert.Equal(t, []actions.ActionType{
		actions.ActionCopy, actions.ActionRemove, actions.ActionCreate, actions.ActionSymlink,
	}, actions.ActionTypes())
	assert.Equal(t, "unknown", actions.ActionType(42).String())
}

func TestDispatcher_UnknownAction(t *testing.T) {
	project, env, buf := newEnv(t, testutil.EnvMemoryOnly, nil)

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("chmod", map[string]interface{}{"a": "b"}))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownAction))
	assert.Empty(t, buf.Lines())
	testutil.AssertNotExists(t, project.FS, project.Path("a"))
}

func TestDispatcher_CancelledContext(t *testing.T) {
	project, env, _ := newEnv(t, testutil.EnvMemoryOnly, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := actions.NewDispatcher().Dispatch(ctx, env, entry("copy", map[string]interface{}{"a.txt": "a.txt"}))

	require.ErrorIs(t, err, context.Canceled)
	testutil.AssertNotExists(t, project.FS, project.Path("a.txt"))
}

func TestDispatcher_AbsolutePathRejected(t *testing.T) {
	tests := []struct {
		name   string
		action string
		args   interface{}
	}{
		{"copy source", "copy", map[string]interface{}{"/etc/passwd": "passwd"}},
		{"copy destination", "copy", map[string]interface{}{"a.txt": "/tmp/a.txt"}},
		{"copy source before destination shape", "copy", map[string]interface{}{"/etc/passwd": []interface{}{"x"}}},
		{"remove", "remove", []interface{}{"/var"}},
		{"create", "create", map[string]interface{}{"C:\\dir": "0755"}},
		{"symlink origin", "symlink", map[string]interface{}{"/dist": "public"}},
		{"symlink target", "symlink", map[string]interface{}{"a.txt": "https://example.com/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env, buf := newEnv(t, testutil.EnvMemoryOnly, map[string]string{"a.txt": "a"})

			err := actions.NewDispatcher().Dispatch(context.Background(), env, entry(tt.action, tt.args))

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "got %v", err)
			assert.Contains(t, err.Error(), "It must be relative")
			assert.Empty(t, buf.Lines())
		})
	}
}

func TestDispatcher_WrongArgumentShape(t *testing.T) {
	_, env, _ := newEnv(t, testutil.EnvMemoryOnly, nil)

	err := actions.NewDispatcher().Dispatch(context.Background(), env, entry("copy", []interface{}{"a", "b"}))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrActionInvalid))
}
