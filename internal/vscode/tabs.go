package vscode

import "sync"

// Tab is one open editor tab.
type Tab struct {
	Label  string
	Active bool
	Input  URI
}

// TabGroup is one column of tabs.
type TabGroup struct {
	Active     bool
	ViewColumn int
	Tabs       []Tab
}

// TabGroupChangeEvent describes a tab mutation.
type TabGroupChangeEvent struct {
	Opened []Tab
	Closed []Tab
}

// TabGroupsAPI models the editor's tab layout. A headless host starts with
// a single empty group; extensions that enumerate or close tabs see a
// consistent, if minimal, picture.
type TabGroupsAPI struct {
	mu              sync.Mutex
	groups          []TabGroup
	onDidChangeTabs *Emitter[TabGroupChangeEvent]
}

// NewTabGroupsAPI constructs the tab model with one active empty group.
func NewTabGroupsAPI() *TabGroupsAPI {
	return &TabGroupsAPI{
		groups:          []TabGroup{{Active: true, ViewColumn: 1}},
		onDidChangeTabs: NewEmitter[TabGroupChangeEvent](),
	}
}

// All returns the current tab groups.
func (t *TabGroupsAPI) All() []TabGroup {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TabGroup, len(t.groups))
	copy(out, t.groups)
	return out
}

// OpenTab records a tab in the active group and fires the change event.
func (t *TabGroupsAPI) OpenTab(tab Tab) {
	t.mu.Lock()
	for i := range t.groups {
		if t.groups[i].Active {
			t.groups[i].Tabs = append(t.groups[i].Tabs, tab)
			break
		}
	}
	t.mu.Unlock()
	t.onDidChangeTabs.Fire(TabGroupChangeEvent{Opened: []Tab{tab}})
}

// CloseTab removes the first tab with the given label from any group.
func (t *TabGroupsAPI) CloseTab(label string) bool {
	t.mu.Lock()
	var closed *Tab
	for gi := range t.groups {
		for ti, tab := range t.groups[gi].Tabs {
			if tab.Label == label {
				closed = &tab
				t.groups[gi].Tabs = append(t.groups[gi].Tabs[:ti], t.groups[gi].Tabs[ti+1:]...)
				break
			}
		}
		if closed != nil {
			break
		}
	}
	t.mu.Unlock()
	if closed == nil {
		return false
	}
	t.onDidChangeTabs.Fire(TabGroupChangeEvent{Closed: []Tab{*closed}})
	return true
}

// OnDidChangeTabs registers an observer for tab mutations.
func (t *TabGroupsAPI) OnDidChangeTabs(listener func(TabGroupChangeEvent), stores ...*DisposableStore) Disposable {
	return t.onDidChangeTabs.Event(listener, stores...)
}
