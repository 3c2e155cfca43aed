package main

import (
	"strconv"
	"strings"

	"photoalbum/internal/catalog"
	"photoalbum/internal/library"
)

const dateLayout = "2006-01-02"

type albumView struct {
	Name   string `json:"name" yaml:"name"`
	Photos int    `json:"photos" yaml:"photos"`
}

type photoView struct {
	Album       string   `json:"album" yaml:"album"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Tags        []string `json:"tags" yaml:"tags"`
	Width       int      `json:"width,omitempty" yaml:"width,omitempty"`
	Height      int      `json:"height,omitempty" yaml:"height,omitempty"`
}

type tagView struct {
	Name   string `json:"name" yaml:"name"`
	Photos int    `json:"photos" yaml:"photos"`
}

type outcomeView struct {
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	Album string `json:"album" yaml:"album"`
	Name  string `json:"name" yaml:"name"`
	OK    bool   `json:"ok" yaml:"ok"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func albumViews(albums []*catalog.Album) []albumView {
	out := make([]albumView, 0, len(albums))
	for _, a := range albums {
		out = append(out, albumView{Name: a.Name(), Photos: a.Len()})
	}
	return out
}

func newPhotoView(p *catalog.Photo) photoView {
	view := photoView{
		Name:        p.Name(),
		Description: p.Description(),
		Tags:        p.TagNames(),
	}
	if a := p.Album(); a != nil {
		view.Album = a.Name()
	}
	if date, ok := p.DateCreated(); ok {
		view.Date = date.Format(dateLayout)
	}
	if r := p.Raster(); r != nil {
		view.Width, view.Height = r.Size()
	}
	return view
}

func photoViews(photos []*catalog.Photo) []photoView {
	out := make([]photoView, 0, len(photos))
	for _, p := range photos {
		out = append(out, newPhotoView(p))
	}
	return out
}

func tagViews(tags []*catalog.Tag) []tagView {
	out := make([]tagView, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagView{Name: t.Name(), Photos: t.Len()})
	}
	return out
}

func outcomeViews(outcomes []library.Outcome) []outcomeView {
	out := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		view := outcomeView{Path: o.Path, Album: o.Album, Name: o.Name, OK: o.OK(), Kind: o.Kind()}
		if o.Err != nil {
			view.Error = o.Err.Error()
		}
		out = append(out, view)
	}
	return out
}

func renderAlbums(views []albumView) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Name, strconv.Itoa(v.Photos)})
	}
	return renderTable([]column{{header: "Album"}, {header: "Photos", numeric: true}}, rows, countFooter(len(views), "album"))
}

func renderPhotos(views []photoView) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		size := ""
		if v.Width > 0 {
			size = strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
		}
		rows = append(rows, []string{v.Album, v.Name, v.Date, size, strings.Join(v.Tags, ", "), v.Description})
	}
	columns := []column{
		{header: "Album"},
		{header: "Photo"},
		{header: "Date"},
		{header: "Size", numeric: true},
		{header: "Tags"},
		{header: "Description"},
	}
	return renderTable(columns, rows, countFooter(len(views), "photo"))
}

func renderTags(views []tagView) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Name, strconv.Itoa(v.Photos)})
	}
	return renderTable([]column{{header: "Tag"}, {header: "Photos", numeric: true}}, rows, countFooter(len(views), "tag"))
}

func renderOutcomes(views []outcomeView, colorize bool) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		status := statusLabel(v.OK, colorize)
		detail := v.Kind
		if v.Error != "" {
			detail = v.Error
		}
		rows = append(rows, []string{status, v.Album, v.Name, detail})
	}
	columns := []column{{header: "Status"}, {header: "Album"}, {header: "Photo"}, {header: "Detail"}}
	return renderTable(columns, rows, "")
}

func countFooter(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
