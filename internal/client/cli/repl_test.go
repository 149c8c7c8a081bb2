package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	expire   bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) sessionExpired() bool {
	e := f.expire
	f.expire = false
	return e
}

func (f *fakeExec) Register(context.Context) error { return f.record("register", "") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", "")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) Whoami(context.Context) error  { return f.record("whoami", "") }
func (f *fakeExec) List(context.Context) error    { return f.record("list", "") }
func (f *fakeExec) Refresh(context.Context) error { return f.record("refresh", "") }
func (f *fakeExec) Search(_ context.Context, term string) error {
	return f.record("search", term)
}
func (f *fakeExec) Filter(_ context.Context, category string) error {
	return f.record("filter", category)
}
func (f *fakeExec) ClearFilters(context.Context) error { return f.record("clear", "") }
func (f *fakeExec) Categories(context.Context) error   { return f.record("categories", "") }
func (f *fakeExec) Page(_ context.Context, arg string) error {
	return f.record("page", arg)
}
func (f *fakeExec) NextPage(context.Context) error { return f.record("next", "") }
func (f *fakeExec) PrevPage(context.Context) error { return f.record("prev", "") }
func (f *fakeExec) Add(context.Context) error      { return f.record("add", "") }
func (f *fakeExec) Edit(_ context.Context, ref string) error {
	return f.record("edit", ref)
}
func (f *fakeExec) Delete(_ context.Context, ref string) error {
	// simulates a 401 observed while deleting
	f.loggedIn = false
	f.expire = true
	return f.record("delete", ref)
}
func (f *fakeExec) History(_ context.Context, ref string) error {
	return f.record("history", ref)
}
func (f *fakeExec) Import(_ context.Context, paths []string) error {
	return f.record("import", strings.Join(paths, ","))
}
func (f *fakeExec) Export(context.Context) error { return f.record("export", "") }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() {
		printlnFn = origPrintln
		printFn = origPrint
	})
	return &lines
}

func TestRunREPL_SignedOutCommandsOnly(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{}
	input := rdr(strings.Join([]string{"list", "add", "register", "exit", "login"}, "\n"))

	runREPL(context.Background(), exec, func() string { return "sk> " }, input)

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.Contains(t, *lines, "Unknown command: list (type 'help')")
}

func TestRunREPL_SignedInDispatch(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	input := rdr(strings.Join([]string{
		"login",
		"search blue widget",
		"filter Tools",
		"filter",
		"clear",
		"page 3",
		"next",
		"prev",
		"edit 2",
		"history abc",
		"import a.csv b.csv",
		"export",
		"",
		"logout",
		"refresh",
	}, "\n"))

	runREPL(context.Background(), exec, func() string { return "" }, input)

	assert.Equal(t, []string{
		"login", "search", "filter", "filter", "clear", "page", "next", "prev",
		"edit", "history", "import", "export", "logout",
	}, exec.calls)
	assert.Equal(t, "blue widget", exec.args[1])
	assert.Equal(t, "Tools", exec.args[2])
	assert.Equal(t, "", exec.args[3])
	assert.Equal(t, "3", exec.args[5])
	assert.Equal(t, "a.csv,b.csv", exec.args[10])
}

func TestRunREPL_SessionExpiredNotice(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	input := rdr("delete 1\nlist\nlogin\n")

	runREPL(context.Background(), exec, func() string { return "" }, input)

	assert.Equal(t, []string{"delete", "login"}, exec.calls)
	assert.Contains(t, *lines, MsgSessionExpired)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("register\n"))
	assert.Empty(t, exec.calls)
}
