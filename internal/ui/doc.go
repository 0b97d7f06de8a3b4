// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// A single screen holds a query input above a track list. While the query is blank the list
// shows the saved favorites; otherwise it shows the songs matching the query. Every edit is
// handed to a [search.Controller], whose state updates arrive through its latest-value channel
// and are read one at a time by a [tea.Cmd] that re-arms itself after each message.
//
// Favorites are loaded in the background when the program starts and toggled through a
// [favorites.Manager]. The footer shows a share link that reopens the current query.
//
// Keyboard navigation: tab switches focus between input and list, f/space toggles a favorite,
// o opens the track preview, esc returns to the input, q (in the list) and ctrl+c quit.
package ui
