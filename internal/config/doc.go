// Package config reads the two configuration surfaces of the splitter:
// the plain-text job file naming the inputs of one run (source audio,
// tracklist, cover, output directory, album name, artist), and the JSON
// settings file holding optional behavior (tag modification, cover art
// processing, playlist creation).
package config
