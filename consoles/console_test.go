package consoles

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/reusee/starconsole/evals"
	"github.com/reusee/starconsole/transcripts"
	"go.starlark.net/starlark"
)

type testClipboard struct {
	text string
}

func (t *testClipboard) WriteAll(text string) error {
	t.text = text
	return nil
}

type testConsole struct {
	*Console
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	clipboard *testClipboard
}

func newTestConsole(t *testing.T) testConsole {
	ret := testConsole{
		stdout:    new(bytes.Buffer),
		stderr:    new(bytes.Buffer),
		clipboard: new(testClipboard),
	}
	ret.Console = New(evals.NewEvaluator(evals.NewNamespace(), nil), Options{
		Stdout:    ret.stdout,
		Stderr:    ret.stderr,
		Clipboard: ret.clipboard,
	})
	return ret
}

func (c testConsole) submit(command string) {
	c.TypeText(command)
	c.Return(context.Background())
}

func TestInitialPrompt(t *testing.T) {
	c := newTestConsole(t)
	if s := c.Text(); s != ">>> " {
		t.Fatalf("got %q", s)
	}
	if c.Caret() != 4 || c.Limit() != 4 {
		t.Fatalf("got %v %v", c.Caret(), c.Limit())
	}
	if c.State() != AwaitingInput {
		t.Fatalf("got %v", c.State())
	}
	if c.PromptString() != ">>> " {
		t.Fatal()
	}
}

func TestSubmitExpression(t *testing.T) {
	c := newTestConsole(t)
	c.submit("1+1")
	if s := c.Text(); s != ">>> 1+1\n2\n>>> " {
		t.Fatalf("got %q", s)
	}
	snapshot := c.Snapshot()
	if snapshot.Caret != snapshot.Len || snapshot.Limit != snapshot.Len {
		t.Fatalf("got %+v", snapshot)
	}
	if str := fmt.Sprintf("%q", c.History()); str != `["1+1"]` {
		t.Fatalf("got %s", str)
	}

	var outputs, commands []string
	for _, run := range snapshot.Runs {
		if run.Tags.Has(transcripts.Output) {
			outputs = append(outputs, run.Text)
		}
		if run.Tags.Has(transcripts.Command) {
			commands = append(commands, run.Text)
		}
	}
	if str := fmt.Sprintf("%q", outputs); str != `["2"]` {
		t.Fatalf("got %s", str)
	}
	if str := fmt.Sprintf("%q", commands); str != `["1+1"]` {
		t.Fatalf("got %s", str)
	}
}

func TestNamespacePersists(t *testing.T) {
	c := newTestConsole(t)
	c.submit("x = 5")
	c.submit("x")
	if s := c.Text(); s != ">>> x = 5\n>>> x\n5\n>>> " {
		t.Fatalf("got %q", s)
	}
	c.submit("None")
	if s := c.Text(); !strings.HasSuffix(s, "5\n>>> None\n>>> ") {
		t.Fatalf("got %q", s)
	}
}

func TestSubmitError(t *testing.T) {
	c := newTestConsole(t)
	c.submit("fail('boom')")
	text := c.Text()
	if !strings.HasPrefix(text, ">>> fail('boom')\nERROR:\n") {
		t.Fatalf("got %q", text)
	}
	if !strings.Contains(text, "boom\n>>> ") {
		t.Fatalf("got %q", text)
	}
	var errorText string
	for _, run := range c.Snapshot().Runs {
		if run.Tags.Has(transcripts.Error) {
			errorText += run.Text
		}
	}
	if !strings.HasPrefix(errorText, "ERROR:\n") {
		t.Fatalf("got %q", errorText)
	}
	if c.State() != AwaitingInput {
		t.Fatal()
	}

	c.submit("2*3")
	if !strings.HasSuffix(c.Text(), "2*3\n6\n>>> ") {
		t.Fatalf("got %q", c.Text())
	}
}

func TestSubmitStatementSyntaxError(t *testing.T) {
	c := newTestConsole(t)
	c.submit("x = ")
	if !strings.Contains(c.Text(), "ERROR:\n") {
		t.Fatalf("got %q", c.Text())
	}
	if len(c.History()) != 1 {
		t.Fatal()
	}
}

func TestSubmitLeadingSpace(t *testing.T) {
	c := newTestConsole(t)
	c.submit("  1+2")
	if !strings.HasSuffix(c.Text(), "\n3\n>>> ") {
		t.Fatalf("got %q", c.Text())
	}
	if str := fmt.Sprintf("%q", c.History()); str != `["  1+2"]` {
		t.Fatalf("got %s", str)
	}
}

func TestBackspace(t *testing.T) {
	c := newTestConsole(t)
	c.submit("1")
	before := c.Text()

	c.TypeText("ab")
	c.Backspace()
	if c.Input() != "a" {
		t.Fatalf("got %q", c.Input())
	}
	c.Backspace()
	c.Backspace()
	c.Backspace()
	if c.Text() != before {
		t.Fatalf("got %q", c.Text())
	}

	// caret in history
	c.TypeText("xy")
	c.SetCaret(2)
	c.Backspace()
	if c.Text() != before+"xy" {
		t.Fatalf("got %q", c.Text())
	}
}

func TestDelete(t *testing.T) {
	c := newTestConsole(t)
	c.TypeText("abc")
	c.Left()
	c.Left()
	c.Delete()
	if c.Input() != "ac" {
		t.Fatalf("got %q", c.Input())
	}
	c.End()
	c.Delete()
	if c.Input() != "ac" {
		t.Fatalf("got %q", c.Input())
	}
	c.Home()
	if c.Caret() != c.Limit() {
		t.Fatal()
	}
	c.Delete()
	if c.Text() != ">>> ac" {
		t.Fatalf("got %q", c.Text())
	}
}

func TestSelectionDelete(t *testing.T) {
	c := newTestConsole(t)
	c.TypeText("hello")
	limit := c.Limit()
	c.Select(limit+1, limit+3)
	c.Backspace()
	if c.Input() != "hlo" {
		t.Fatalf("got %q", c.Input())
	}
	if c.Caret() != limit+1 {
		t.Fatalf("got %v", c.Caret())
	}

	c.Select(limit, limit+1)
	c.Delete()
	if c.Input() != "lo" {
		t.Fatalf("got %q", c.Input())
	}

	// a selection reaching into history is not deleted
	c.End()
	c.Select(0, limit+1)
	c.Backspace()
	if c.Text() != ">>> l" {
		t.Fatalf("got %q", c.Text())
	}

	c.Select(limit, limit+1)
	c.TypeText("X")
	if c.Input() != "X" {
		t.Fatalf("got %q", c.Input())
	}
}

func TestUpAndRecall(t *testing.T) {
	c := newTestConsole(t)
	c.submit("x = 5")
	c.submit("x + 1")

	c.Up()
	line, _ := lineCol(c.Console)
	if line != 1 {
		t.Fatalf("got %v", line)
	}
	if c.Caret() != len([]rune(">>> x = 5\n>>> x + 1")) {
		t.Fatalf("got %v", c.Caret())
	}

	c.Up()
	if c.Caret() != len([]rune(">>> x = 5")) {
		t.Fatalf("got %v", c.Caret())
	}
	c.Up()
	if c.Caret() != len([]rune(">>> x = 5")) {
		t.Fatalf("got %v", c.Caret())
	}

	before := c.Text()
	c.Return(context.Background())
	if c.Input() != "x = 5" {
		t.Fatalf("got %q", c.Input())
	}
	if !strings.HasPrefix(c.Text(), before) {
		t.Fatalf("got %q", c.Text())
	}
	if len(c.History()) != 2 {
		t.Fatal()
	}

	// recall from an output line does nothing
	c.Select(0, 0)
	c.SetCaret(len([]rune(">>> x = 5\n>>> x + 1\n6")))
	c.Return(context.Background())
	if c.Input() != "x = 5" {
		t.Fatalf("got %q", c.Input())
	}
}

func TestEditHistoryInPlace(t *testing.T) {
	c := newTestConsole(t)
	c.submit("x = 5")
	c.Up()
	c.TypeText("0")
	if !strings.HasPrefix(c.Text(), ">>> x = 50\n") {
		t.Fatalf("got %q", c.Text())
	}
	c.Return(context.Background())
	if c.Input() != "x = 50" {
		t.Fatalf("got %q", c.Input())
	}
	c.Return(context.Background())
	c.submit("x")
	if !strings.HasSuffix(c.Text(), "\n50\n>>> ") {
		t.Fatalf("got %q", c.Text())
	}
	if str := fmt.Sprintf("%q", c.History()); str != `["x = 5" "x = 50" "x"]` {
		t.Fatalf("got %s", str)
	}
}

func TestTabCompletion(t *testing.T) {
	c := newTestConsole(t)
	ns := c.Evaluator().Namespace()
	ns.Set("alphabet", starlark.String("abc"))
	ns.Set("alpha", starlark.MakeInt(1))
	ns.Set("gamma", starlark.MakeInt(3))

	// unique
	c.TypeText("gam")
	c.Tab()
	if c.Input() != "gamma" {
		t.Fatalf("got %q", c.Input())
	}
	c.Return(context.Background())

	// ambiguous
	before := c.Text()
	c.TypeText("alph")
	c.Tab()
	if c.Input() != "alph" {
		t.Fatalf("got %q", c.Input())
	}
	if s := strings.TrimPrefix(c.Text(), before); s != "alph\n alpha\n alphabet\n>>> alph" {
		t.Fatalf("got %q", s)
	}
	if len(c.History()) != 1 {
		t.Fatal()
	}

	// none
	c.TypeText("zzz")
	text := c.Text()
	c.Tab()
	if c.Text() != text {
		t.Fatalf("got %q", c.Text())
	}

	// caret in history
	c.SetCaret(0)
	c.Tab()
	if c.Text() != text {
		t.Fatalf("got %q", c.Text())
	}
}

func TestTabCustomCompleter(t *testing.T) {
	var queried []string
	c := New(evals.NewEvaluator(evals.NewNamespace(), nil), Options{
		Stdout: new(bytes.Buffer),
		Stderr: new(bytes.Buffer),
		Complete: func(text string, state int) (string, bool) {
			queried = append(queried, text)
			if state < 2 {
				return []string{"foo", "bar"}[state], true
			}
			return "", false
		},
	})
	c.TypeText("  f ")
	c.Tab()
	if queried[0] != "f" {
		t.Fatalf("got %q", queried[0])
	}
	if !strings.Contains(c.Text(), "\n bar\n foo\n>>> f") {
		t.Fatalf("got %q", c.Text())
	}
}

func TestSaveAs(t *testing.T) {
	c := newTestConsole(t)
	c.submit("1+1")
	c.submit("x = 5")

	buf := new(bytes.Buffer)
	if err := c.SaveAs(buf); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); s != "1+1\nx = 5\n" {
		t.Fatalf("got %q", s)
	}

	path := filepath.Join(t.TempDir(), "session.star")
	if err := c.SaveAsFile(path); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "1+1\nx = 5\n" {
		t.Fatalf("got %q", content)
	}

	if err := c.SaveAsFile(filepath.Join(t.TempDir(), "missing", "x.star")); err == nil {
		t.Fatal("should error")
	}
}

func TestClear(t *testing.T) {
	c := newTestConsole(t)
	c.submit("1+1")
	c.Clear()
	if c.Text() != ">>> " {
		t.Fatalf("got %q", c.Text())
	}
	if c.Caret() != 4 || c.Limit() != 4 {
		t.Fatal()
	}
	if len(c.History()) != 1 {
		t.Fatal()
	}
	c.submit("2+2")
	if c.Text() != ">>> 2+2\n4\n>>> " {
		t.Fatalf("got %q", c.Text())
	}
}

func TestSelectAllCopy(t *testing.T) {
	c := newTestConsole(t)
	if err := c.Copy(); err != nil {
		t.Fatal(err)
	}
	if c.clipboard.text != "" {
		t.Fatal()
	}
	c.submit("1+1")
	c.SelectAll()
	if c.Caret() != 0 {
		t.Fatal()
	}
	if err := c.Copy(); err != nil {
		t.Fatal(err)
	}
	if c.clipboard.text != ">>> 1+1\n2\n>>> " {
		t.Fatalf("got %q", c.clipboard.text)
	}
	c.ClearSelection()
	if c.SelectedText() != "" {
		t.Fatal()
	}
}

func TestHelpAbout(t *testing.T) {
	c := newTestConsole(t)
	if !strings.HasPrefix(c.HelpURL(), "https://") {
		t.Fatal()
	}
	if c.About() == "" {
		t.Fatal()
	}
}

func TestRedirectAtPrompt(t *testing.T) {
	c := newTestConsole(t)
	c.TypeText("ab")
	fmt.Fprint(c.Stdout(), "hello")
	fmt.Fprintln(c.Stderr(), "oops")
	if s := c.Text(); s != "hello\noops\n>>> ab" {
		t.Fatalf("got %q", s)
	}
	if c.Input() != "ab" {
		t.Fatalf("got %q", c.Input())
	}
	if c.Caret() != c.Snapshot().Len {
		t.Fatal()
	}
	if c.stdout.String() != "hello" {
		t.Fatalf("got %q", c.stdout.String())
	}
	if c.stderr.String() != "oops\n" {
		t.Fatalf("got %q", c.stderr.String())
	}
	var errorText string
	for _, run := range c.Snapshot().Runs {
		if run.Tags.Has(transcripts.Error) {
			errorText += run.Text
		}
	}
	if errorText != "oops\n" {
		t.Fatalf("got %q", errorText)
	}
}

func TestRedirectAwayFromPrompt(t *testing.T) {
	c := newTestConsole(t)
	c.submit("1")
	c.SetCaret(0)
	fmt.Fprint(c.Stdout(), "tail")
	if s := c.Text(); s != ">>> 1\n1\n>>> tail" {
		t.Fatalf("got %q", s)
	}
}

func TestPrintDuringEvaluation(t *testing.T) {
	c := newTestConsole(t)
	c.submit(`print("hi")`)
	if s := c.Text(); s != ">>> print(\"hi\")\nhi\n>>> " {
		t.Fatalf("got %q", s)
	}
	if c.stdout.String() != "hi\n" {
		t.Fatalf("got %q", c.stdout.String())
	}
	c.submit(`[print(i) for i in range(2)]`)
	if s := c.Text(); !strings.HasSuffix(s, "\n0\n1\n[None, None]\n>>> ") {
		t.Fatalf("got %q", s)
	}
}

func TestRedirectProcess(t *testing.T) {
	c := newTestConsole(t)
	savedOut := os.Stdout
	restore, err := c.RedirectProcess()
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, "from process")
	fmt.Fprintln(os.Stderr, "process error")
	restore()
	restore()
	if os.Stdout != savedOut {
		t.Fatal("not restored")
	}
	text := c.Text()
	if !strings.Contains(text, "from process\n") {
		t.Fatalf("got %q", text)
	}
	if !strings.Contains(text, "process error\n") {
		t.Fatalf("got %q", text)
	}
	if !strings.HasSuffix(text, ">>> ") {
		t.Fatalf("got %q", text)
	}
	if c.stdout.String() != "from process\n" {
		t.Fatalf("got %q", c.stdout.String())
	}
}

func TestConcurrentWrites(t *testing.T) {
	c := newTestConsole(t)
	wg := new(sync.WaitGroup)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Fprintf(c.Stdout(), "line %d\n", i)
		}()
	}
	for range 20 {
		c.TypeText("x")
	}
	wg.Wait()
	if c.Input() != strings.Repeat("x", 20) {
		t.Fatalf("got %q", c.Input())
	}
	if n := strings.Count(c.Text(), "line "); n != 20 {
		t.Fatalf("got %v", n)
	}
	if !strings.HasSuffix(c.Text(), ">>> "+strings.Repeat("x", 20)) {
		t.Fatalf("got %q", c.Text())
	}
}

func TestOnChange(t *testing.T) {
	c := newTestConsole(t)
	n := 0
	c.OnChange(func() {
		n++
	})
	c.TypeText("1")
	if n != 1 {
		t.Fatalf("got %v", n)
	}
	c.Return(context.Background())
	if n < 3 {
		t.Fatalf("got %v", n)
	}
}

func TestNavigation(t *testing.T) {
	c := newTestConsole(t)
	c.submit("ab = 1")
	c.TypeText("xyz")
	limit := c.Limit()

	c.Home()
	if c.Caret() != limit {
		t.Fatal()
	}
	c.Right()
	if c.Caret() != limit+1 {
		t.Fatal()
	}
	c.End()
	if c.Caret() != limit+3 {
		t.Fatal()
	}
	c.SetCaret(1)
	c.Home()
	if c.Caret() != 0 {
		t.Fatal()
	}
	c.Down()
	if line, col := lineCol(c.Console); line != 1 || col != 0 {
		t.Fatalf("got %v %v", line, col)
	}
	c.Left()
	if c.Caret() != len([]rune(">>> ab = 1")) {
		t.Fatalf("got %v", c.Caret())
	}

	c.End()
	c.SetCaret(limit + 3)
	c.ExtendSelection(-2)
	if s := c.SelectedText(); s != "yz" {
		t.Fatalf("got %q", s)
	}
	c.ExtendSelection(1)
	if s := c.SelectedText(); s != "z" {
		t.Fatalf("got %q", s)
	}
	c.Left()
	if c.SelectedText() != "" {
		t.Fatal()
	}
}

func TestStartup(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.star")
	if err := os.WriteFile(good, []byte("answer = 42\nprint('loaded')\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.star")
	if err := os.WriteFile(bad, []byte("fail('bad startup')\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := newTestConsole(t)
	c.Startup(context.Background(), "Welcome", []string{
		good,
		bad,
		filepath.Join(dir, "missing.star"),
	})
	text := c.Text()
	if !strings.HasPrefix(text, "Welcome\nloaded\nERROR:\n") {
		t.Fatalf("got %q", text)
	}
	if strings.Count(text, "ERROR:") != 2 {
		t.Fatalf("got %q", text)
	}
	if !strings.HasSuffix(text, "\n>>> ") {
		t.Fatalf("got %q", text)
	}
	c.submit("answer")
	if !strings.HasSuffix(c.Text(), "\n42\n>>> ") {
		t.Fatalf("got %q", c.Text())
	}
}

func lineCol(c *Console) (int, int) {
	c.lock()
	defer c.unlock()
	return c.text.LineCol(c.caret())
}
