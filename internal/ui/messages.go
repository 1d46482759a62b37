package ui

// pageChangedMsg reports an edit to a page file on disk
type pageChangedMsg struct {
	path string
}

// quitMsg signals that the application should quit
type quitMsg struct{}
