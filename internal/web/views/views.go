// Package views renders the HTML pages as templ components.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/samdwyer/repocrawl/internal/dungeon"
	"github.com/samdwyer/repocrawl/internal/github"
)

// MapData carries everything the map page needs.
type MapData struct {
	Username string
	Repos    []github.Repository
	Map      *dungeon.Map
}

// Index renders the landing page with the username form.
func Index() templ.Component {
	return page("repocrawl", func(w io.Writer) error {
		_, err := io.WriteString(w, `<section class="intro">
<h1>repocrawl</h1>
<p>Turn a GitHub profile into a dungeon. Every repository digs another room.</p>
<form method="post" action="/map">
<input type="text" name="username" placeholder="github username" required autofocus>
<button type="submit">Delve</button>
</form>
</section>`)
		return err
	})
}

// MapPage renders the generated dungeon plus the repository panel.
func MapPage(data MapData) templ.Component {
	return page("repocrawl — "+data.Username, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header><h1>%s&rsquo;s dungeon</h1><p>%d repositories, %d rooms carved</p></header>`,
			templ.EscapeString(data.Username), len(data.Repos), len(data.Map.Rooms)); err != nil {
			return err
		}

		if err := writeGrid(w, data.Map); err != nil {
			return err
		}
		if err := writePayload(w, data.Map); err != nil {
			return err
		}
		return writeRepoPanel(w, data.Repos)
	})
}

// writeGrid emits the tile grid as preformatted text.
func writeGrid(w io.Writer, m *dungeon.Map) error {
	if _, err := io.WriteString(w, `<pre class="map">`); err != nil {
		return err
	}
	for y := 0; y < m.Grid.Height; y++ {
		for x := 0; x < m.Grid.Width; x++ {
			r := m.Grid.Tiles[y][x].Rune()
			if m.HasSpawn() && x == m.SpawnX && y == m.SpawnY {
				r = '@'
			}
			if _, err := fmt.Fprintf(w, "%c", r); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</pre>`)
	return err
}

// writePayload embeds the raw grid and spawn for script consumers, using
// the fixed tile encoding.
func writePayload(w io.Writer, m *dungeon.Map) error {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	payload := struct {
		Grid  [][]int `json:"grid"`
		Spawn *point  `json:"spawn"`
	}{Grid: m.Grid.Ints()}
	if m.HasSpawn() {
		payload.Spawn = &point{X: m.SpawnX, Y: m.SpawnY}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, `<script id="map-data" type="application/json">%s</script>`, encoded)
	return err
}

func writeRepoPanel(w io.Writer, repos []github.Repository) error {
	if _, err := io.WriteString(w, `<section class="repos"><h2>Rooms</h2><ul>`); err != nil {
		return err
	}
	for _, repo := range repos {
		if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a>`,
			templ.EscapeString(string(templ.URL(repo.URL))), templ.EscapeString(repo.Title)); err != nil {
			return err
		}
		if repo.Description != "" {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(repo.Description)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

// page wraps body content in the shared document shell.
func page(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
