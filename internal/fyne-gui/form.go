package fynegui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/schema"
)

// formField binds one argument to the widget that edits it.
type formField struct {
	spec   *schema.ArgSpec
	object fyne.CanvasObject
	get    func() interface{}
	set    func(interface{})
	enable func(bool)
}

// argForm renders a schema as form rows. Mutex groups become one card with a
// radio selector; only the active member is enabled.
type argForm struct {
	window   fyne.Window
	schema   *schema.Schema
	onChange func()

	fields  []*formField
	byName  map[string]*formField
	radios  map[string]*widget.RadioGroup
	labels  map[string]map[string]string // group -> label -> member name
	active  map[string]string
	content *fyne.Container

	// suppressed while Reset writes many fields at once
	quiet bool
}

func newArgForm(window fyne.Window, s *schema.Schema, defaults parser.Values, active map[string]string, onChange func()) *argForm {
	f := &argForm{
		window:   window,
		schema:   s,
		onChange: onChange,
		byName:   make(map[string]*formField),
		radios:   make(map[string]*widget.RadioGroup),
		labels:   make(map[string]map[string]string),
		active:   make(map[string]string),
	}

	for _, spec := range s.Args {
		field := f.newField(spec)
		f.fields = append(f.fields, field)
		f.byName[spec.Name] = field
	}

	f.content = f.layout()
	f.Reset(defaults, active)
	return f
}

func (f *argForm) Content() fyne.CanvasObject {
	return f.content
}

func (f *argForm) changed() {
	if !f.quiet && f.onChange != nil {
		f.onChange()
	}
}

// layout emits ungrouped arguments as widget.Form sections and a card for
// each mutex group at the position of its first member.
func (f *argForm) layout() *fyne.Container {
	box := container.NewVBox()
	section := widget.NewForm()
	flush := func() {
		if len(section.Items) > 0 {
			box.Add(section)
			section = widget.NewForm()
		}
	}

	placed := make(map[string]bool)
	for _, field := range f.fields {
		spec := field.spec
		if spec.Group == "" {
			section.AppendItem(f.formItem(field))
			continue
		}
		if placed[spec.Group] {
			continue
		}
		placed[spec.Group] = true
		flush()
		box.Add(f.groupCard(f.schema.Group(spec.Group)))
	}
	flush()
	return box
}

func (f *argForm) formItem(field *formField) *widget.FormItem {
	label := field.spec.Label()
	if field.spec.Required {
		label += " *"
	}
	item := widget.NewFormItem(label, field.object)
	item.HintText = field.spec.Help
	return item
}

func (f *argForm) groupCard(group *schema.MutexGroup) fyne.CanvasObject {
	labels := make(map[string]string, len(group.Members))
	options := make([]string, 0, len(group.Members))
	for _, member := range group.Members {
		labels[member.Label()] = member.Name
		options = append(options, member.Label())
	}
	f.labels[group.ID] = labels

	radio := widget.NewRadioGroup(options, func(selected string) {
		if name, ok := labels[selected]; ok {
			f.activate(group.ID, name)
		}
	})
	radio.Horizontal = true
	radio.Required = true
	f.radios[group.ID] = radio

	members := widget.NewForm()
	for _, member := range group.Members {
		members.AppendItem(f.formItem(f.byName[member.Name]))
	}

	title := strings.NewReplacer("_", " ", "-", " ").Replace(group.ID)
	return widget.NewCard(title, "Only the selected option is passed", container.NewVBox(radio, members))
}

func (f *argForm) activate(groupID, member string) {
	f.active[groupID] = member
	for _, m := range f.schema.Group(groupID).Members {
		f.byName[m.Name].enable(m.Name == member)
	}
	f.changed()
}

// Values returns the form state in the shape parser.Argv expects.
func (f *argForm) Values() parser.Values {
	values := make(parser.Values, len(f.fields))
	for _, field := range f.fields {
		values[field.spec.Name] = field.get()
	}
	return values
}

func (f *argForm) Active() map[string]string {
	out := make(map[string]string, len(f.active))
	for k, v := range f.active {
		out[k] = v
	}
	return out
}

// Reset loads values and active group members without intermediate change
// notifications, then notifies once.
func (f *argForm) Reset(values parser.Values, active map[string]string) {
	f.quiet = true
	for _, field := range f.fields {
		field.set(values[field.spec.Name])
	}
	for groupID, radio := range f.radios {
		member := active[groupID]
		for label, name := range f.labels[groupID] {
			if name == member {
				radio.SetSelected(label)
			}
		}
		f.activate(groupID, member)
	}
	f.quiet = false
	f.changed()
}

func (f *argForm) newField(spec *schema.ArgSpec) *formField {
	switch {
	case spec.Type == schema.TypeBoolean:
		return f.checkField(spec)
	case spec.Type == schema.TypeChoice:
		return f.selectField(spec)
	case spec.Multiple:
		return f.fileListField(spec)
	case spec.Type.IsPath():
		return f.pathField(spec)
	default:
		return f.entryField(spec)
	}
}

func (f *argForm) checkField(spec *schema.ArgSpec) *formField {
	check := widget.NewCheck("", func(bool) { f.changed() })
	return &formField{
		spec:   spec,
		object: check,
		get:    func() interface{} { return check.Checked },
		set: func(v interface{}) {
			b, _ := v.(bool)
			check.SetChecked(b)
		},
		enable: func(on bool) { setEnabled(check, on) },
	}
}

func (f *argForm) selectField(spec *schema.ArgSpec) *formField {
	sel := widget.NewSelect(spec.Choices, func(string) { f.changed() })
	sel.PlaceHolder = "(none)"

	clearBtn := widget.NewButtonWithIcon("", theme.ContentClearIcon(), sel.ClearSelected)
	clearBtn.Importance = widget.LowImportance
	if spec.Required {
		clearBtn.Hide()
	}

	return &formField{
		spec:   spec,
		object: container.NewBorder(nil, nil, nil, clearBtn, sel),
		get:    func() interface{} { return sel.Selected },
		set: func(v interface{}) {
			if s := parser.Stringify(v); s != "" {
				sel.SetSelected(s)
			} else {
				sel.ClearSelected()
			}
		},
		enable: func(on bool) {
			setEnabled(sel, on)
			setEnabled(clearBtn, on)
		},
	}
}

func (f *argForm) entryField(spec *schema.ArgSpec) *formField {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder(spec))
	entry.OnChanged = func(string) { f.changed() }

	return &formField{
		spec:   spec,
		object: entry,
		get:    func() interface{} { return entry.Text },
		set:    func(v interface{}) { entry.SetText(parser.Stringify(v)) },
		enable: func(on bool) { setEnabled(entry, on) },
	}
}

func (f *argForm) pathField(spec *schema.ArgSpec) *formField {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder(spec))
	entry.OnChanged = func(string) { f.changed() }

	browse := widget.NewButtonWithIcon("Browse", browseIcon(spec.Type), func() {
		f.browse(spec.Type, entry.SetText)
	})

	return &formField{
		spec:   spec,
		object: container.NewBorder(nil, nil, nil, browse, entry),
		get:    func() interface{} { return entry.Text },
		set:    func(v interface{}) { entry.SetText(parser.Stringify(v)) },
		enable: func(on bool) {
			setEnabled(entry, on)
			setEnabled(browse, on)
		},
	}
}

func (f *argForm) fileListField(spec *schema.ArgSpec) *formField {
	editor := NewFileListEditor(placeholder(spec), nil, func(add func(string)) {
		f.browse(schema.TypeFile, add)
	}, func([]string) { f.changed() })

	return &formField{
		spec:   spec,
		object: editor,
		get:    func() interface{} { return editor.Items() },
		set: func(v interface{}) {
			editor.SetItems(parser.Values{"v": v}.Strings("v"))
		},
		enable: func(on bool) {
			if on {
				editor.Enable()
			} else {
				editor.Disable()
			}
		},
	}
}

// browse opens the dialog matching the argument type and passes the picked
// path to done.
func (f *argForm) browse(t schema.ArgType, done func(string)) {
	if f.window == nil {
		return
	}
	switch t {
	case schema.TypeDir:
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err == nil && uri != nil {
				done(uri.Path())
			}
		}, f.window)
	case schema.TypeSave:
		dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
			if err == nil && w != nil {
				_ = w.Close()
				done(w.URI().Path())
			}
		}, f.window)
	default:
		dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				_ = r.Close()
				done(r.URI().Path())
			}
		}, f.window)
	}
}

func browseIcon(t schema.ArgType) fyne.Resource {
	switch t {
	case schema.TypeDir:
		return theme.FolderOpenIcon()
	case schema.TypeSave:
		return theme.DocumentSaveIcon()
	default:
		return theme.FileIcon()
	}
}

func placeholder(spec *schema.ArgSpec) string {
	switch {
	case spec.Default != "":
		return spec.Default
	case spec.Type == schema.TypeInteger:
		return "number"
	case spec.Multiple:
		return "add a file"
	}
	return ""
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(w disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}
