package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/dastanaron/mozbookmarks/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeNormal = 1
	ModeSearch = 2
)

// treeItem is one node of the browsed tree in pre-order
type treeItem struct {
	view   *tview.TreeNode
	node   models.Node
	parent int // index of the enclosing item, -1 for the root
}

// App represents the TUI application
type App struct {
	app    *tview.Application
	tree   *tview.TreeView
	detail *tview.TextView
	search *tview.InputField
	status *tview.TextView
	mode   uint8
	name   string
	root   *models.Root
	items  []treeItem
	// current is the index of the selected item
	current int
	now     func() time.Time
}

// NewApp creates a browser for the tree stored under name
func NewApp(name string, root *models.Root) *App {
	return &App{
		app:    tview.NewApplication(),
		tree:   tview.NewTreeView(),
		detail: tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search: tview.NewInputField().SetLabel("Search: "),
		status: tview.NewTextView().SetDynamicColors(true),
		mode:   ModeNormal,
		name:   name,
		root:   root,
		now:    time.Now,
	}
}

// Run starts the application
func (a *App) Run() error {
	top, items := buildTree(a.root)
	a.items = items
	a.tree.SetRoot(top).SetCurrentNode(top)
	a.tree.SetBorder(true).SetTitle(a.name)
	a.detail.SetBorder(true).SetTitle("Details")

	cols := tview.NewFlex().
		AddItem(a.tree, 0, 2, true).
		AddItem(a.detail, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.tree.SetChangedFunc(a.onSelect)
	a.search.SetDoneFunc(a.onSearchDone)

	a.app.SetRoot(main, true)
	a.app.SetInputCapture(a.globalInput)
	a.showDetails()
	a.updateStatus("")

	a.app.SetFocus(a.tree)
	return a.app.Run()
}

// buildTree mirrors root as tview nodes. The returned items are in
// pre-order; items[0] is the root.
func buildTree(root *models.Root) (*tview.TreeNode, []treeItem) {
	var items []treeItem
	var stack []int // item index per depth
	_ = models.Explore(root, func(n models.Node, depth int) error {
		view := tview.NewTreeNode(label(n)).SetReference(len(items))
		parent := -1
		if depth > 0 {
			parent = stack[depth-1]
			items[parent].view.AddChild(view)
		}
		switch n.(type) {
		case models.Explorable:
			view.SetColor(tcell.ColorYellow)
		case *models.Separator:
			view.SetColor(tcell.ColorGray)
		}
		stack = append(stack[:depth], len(items))
		items = append(items, treeItem{view: view, node: n, parent: parent})
		return nil
	})
	return items[0].view, items
}

func label(n models.Node) string {
	switch v := n.(type) {
	case *models.Root:
		if v.RootName != "" {
			return v.RootName
		}
		return "/"
	case *models.Separator:
		return "────────"
	case *models.Entry:
		if v.Title == "" {
			return v.URI
		}
		return v.Title
	default:
		return n.Common().Title
	}
}

// findNext returns the index of the first item after from whose title,
// uri or tags contain query, wrapping around. It returns -1 when nothing
// matches.
func (a *App) findNext(query string, from int) int {
	q := strings.ToLower(query)
	if q == "" || len(a.items) == 0 {
		return -1
	}
	for i := 1; i <= len(a.items); i++ {
		idx := (from + i) % len(a.items)
		if matches(a.items[idx].node, q) {
			return idx
		}
	}
	return -1
}

func matches(n models.Node, q string) bool {
	if strings.Contains(strings.ToLower(n.Common().Title), q) {
		return true
	}
	e, ok := n.(*models.Entry)
	if !ok {
		return false
	}
	if strings.Contains(strings.ToLower(e.URI), q) {
		return true
	}
	return e.Tags != nil && strings.Contains(strings.ToLower(e.Tags.String()), q)
}

// jump selects the item at idx, expanding its ancestors
func (a *App) jump(idx int) {
	for p := a.items[idx].parent; p >= 0; p = a.items[p].parent {
		a.items[p].view.SetExpanded(true)
	}
	a.tree.SetCurrentNode(a.items[idx].view)
	a.current = idx
	a.showDetails()
}

func (a *App) onSelect(node *tview.TreeNode) {
	if idx, ok := node.GetReference().(int); ok {
		a.current = idx
		a.showDetails()
	}
}

func (a *App) showDetails() {
	if a.current < 0 || a.current >= len(a.items) {
		a.detail.SetText("")
		return
	}
	a.detail.SetText(a.detailText(a.items[a.current].node))
}

func (a *App) detailText(n models.Node) string {
	env := n.Common()
	var sb strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&sb, "[::b]%s:[::-]\n%s\n\n", name, tview.Escape(value))
	}

	switch v := n.(type) {
	case *models.Root:
		field("Type", "Root")
		if v.RootName != "" {
			field("Root", v.RootName)
		}
		field("Children", humanize.Comma(int64(len(v.Children))))
	case *models.Folder:
		field("Type", "Folder")
		field("Title", v.Title)
		if v.RootName != nil {
			field("Root", *v.RootName)
		}
		field("Children", humanize.Comma(int64(len(v.Children))))
	case *models.Entry:
		field("Type", "Bookmark")
		field("Title", v.Title)
		field("URI", v.URI)
		if v.Tags != nil {
			field("Tags", strings.Join(v.Tags.Members(), ", "))
		}
		if v.Charset != nil {
			field("Charset", *v.Charset)
		}
	case *models.Separator:
		field("Type", "Separator")
	}

	field("Guid", string(env.Guid))
	field("Added", a.when(env.DateAdded))
	field("Modified", a.when(env.LastModified))
	return strings.TrimRight(sb.String(), "\n")
}

func (a *App) when(ts models.Timestamp) string {
	t := ts.Time()
	return fmt.Sprintf("%s (%s)", t.Format(time.RFC3339), humanize.RelTime(t, a.now(), "ago", "from now"))
}

func (a *App) updateStatus(message string) {
	statusText := fmt.Sprintf("[::b]/[::r] search  [::b]n[::r] next  [::b]Enter[::r] open/toggle  [::b]q[::r] quit [::b]%s[::r] nodes",
		humanize.Comma(int64(len(a.items))))
	if message != "" {
		statusText += "  " + message
	}
	a.status.SetText(statusText)
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	case ModeNormal:
		a.app.SetFocus(a.tree)
	}
}

func (a *App) searchNext() {
	query := a.search.GetText()
	if query == "" {
		return
	}
	idx := a.findNext(query, a.current)
	if idx < 0 {
		a.updateStatus(fmt.Sprintf("[red]no match for %q[-]", query))
		return
	}
	a.jump(idx)
	a.updateStatus("")
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.searchNext()
		a.setMode(ModeNormal)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.updateStatus("")
		a.setMode(ModeNormal)
	}
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.mode != ModeNormal {
		return event
	}

	switch event.Key() {
	case tcell.KeyEnter:
		item := a.items[a.current]
		if e, ok := item.node.(*models.Entry); ok {
			if e.URI != "" {
				openURL(e.URI)
			}
		} else if len(item.view.GetChildren()) > 0 {
			item.view.SetExpanded(!item.view.IsExpanded())
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			a.app.Stop()
			return nil
		case '/':
			a.setMode(ModeSearch)
			return nil
		case 'n':
			a.searchNext()
			return nil
		}
	}
	return event
}

func openURL(url string) {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	_ = exec.Command(cmd, args...).Start()
}
