package report

import "kolibri/listcontent/internal/content"

func fakeChannel(id, name string) content.Channel {
	return content.Channel{ID: id, Name: name, RootID: id + "-root"}
}

func entry(id, kind string, crumbs ...string) Entry {
	return Entry{Node: content.Node{ID: id, Kind: kind}, Breadcrumbs: crumbs}
}
