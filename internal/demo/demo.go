// Package demo is the counter application rendered by the snapp CLI and
// the preview server.
package demo

import (
	"golang.org/x/net/html"

	"github.com/snapp-dev/snapp/pkg/dom"
	"github.com/snapp-dev/snapp/pkg/snapp"
)

// Shell is the document used when no HTML file is configured.
const Shell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>snapp</title></head>
<body><div id="snapp-body"></div></body>
</html>`

// Target is the mount point inside Shell.
const Target = "#snapp-body"

// App is a mounted counter.
type App struct {
	// Count is the number of button clicks.
	Count *snapp.Cell[int]

	root   *html.Node
	button *html.Node
}

// Root returns the top-level element of the app.
func (a *App) Root() *html.Node { return a.root }

// Button returns the counter button.
func (a *App) Button() *html.Node { return a.button }

// New builds the counter without attaching it.
func New(rt *snapp.Runtime) *App {
	app := &App{Count: snapp.Dynamic(rt, 0)}

	link := []snapp.StyleProp{
		snapp.StyleValue("marginTop", "10px"),
		snapp.StyleValue("textDecoration", "none"),
		snapp.StyleValue("font-weight", "bold"),
	}

	app.button = rt.Create(Button(rt), snapp.Attr("count", app.Count), "Click To Count")

	app.root = rt.Create("div",
		snapp.Attr("className", "counter"),
		snapp.Style(
			snapp.StyleValue("position", "absolute"),
			snapp.StyleValue("display", "grid"),
			snapp.StyleValue("place-items", "center"),
			snapp.StyleValue("top", "50%"),
			snapp.StyleValue("left", "50%"),
			snapp.StyleValue("width", "100%"),
			snapp.StyleValue("transform", "translate(-50%, -50%)"),
		),
		rt.Create("h2", "Welcome to snapp: ", app.Count.Text()),
		app.button,
		rt.Create("br"),
		rt.Create("a",
			snapp.Attr("href", "https://github.com/kigemmanuel/Snapp"),
			snapp.Attr("target", "_blank"),
			snapp.Style(append(link, snapp.StyleValue("color", "#4a90e2"))...),
			"Learn Snapp",
		),
		rt.Create("span",
			snapp.Style(append(link, snapp.StyleValue("color", "#0C2340"))...),
			"Please star and follow",
		),
	)
	return app
}

// Mount builds the counter and renders it relative to the element matching
// selector.
func Mount(rt *snapp.Runtime, selector string, mode snapp.Mode) (*App, error) {
	target, err := rt.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	app := New(rt)
	if err := rt.RenderErr(target, app.root, mode); err != nil {
		rt.Dispose(app.root)
		return nil, err
	}
	return app, nil
}

// Button is a component that increments the *snapp.Cell[int] passed as
// the "count" prop and lightens on hover.
func Button(rt *snapp.Runtime) snapp.Component {
	return func(p snapp.Props) *html.Node {
		hover := snapp.Dynamic(rt, false)
		count, _ := p.Get("count")
		counter, _ := count.(*snapp.Cell[int])

		return rt.Create("button",
			snapp.Style(
				snapp.StyleBind("background-color", func() any {
					if hover.Value() {
						return "#357abd"
					}
					return "#4a90e2"
				}),
				snapp.StyleValue("color", "#fff"),
				snapp.StyleValue("border", "none"),
				snapp.StyleValue("borderRadius", "8px"),
				snapp.StyleValue("padding", "10px 18px"),
				snapp.StyleValue("fontSize", "16px"),
				snapp.StyleValue("cursor", "pointer"),
				snapp.StyleValue("transition", "background 0.2s, transform 0.2s"),
				snapp.StyleBind("transform", func() any {
					if hover.Value() {
						return "translateY(-2px)"
					}
					return "none"
				}),
			),
			snapp.On("onClick", func(*dom.Event) {
				if counter != nil {
					counter.Modify(func(n int) int { return n + 1 })
				}
			}),
			snapp.On("onMouseEnter", func(*dom.Event) { hover.Update(true) }),
			snapp.On("onMouseLeave", func(*dom.Event) { hover.Update(false) }),
			p.Children,
		)
	}
}
