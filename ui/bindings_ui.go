package ui

import (
	"bytes"
	"image/color"

	"github.com/arcadeloop/cabbridge/components"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// BindingsUI holds the ebitenui interface for the control binding editor
type BindingsUI struct {
	UI   *ebitenui.UI
	Menu *components.BindingsMenuData

	// Callbacks
	OnBack  func()
	OnReset func()

	// Widget references for per-frame label refresh
	keyButtons [cfg.ControlCount][2]*widget.Button
	padButtons [cfg.ControlCount][2]*widget.Button

	// Fonts (stored as interface for ebitenui compatibility)
	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewBindingsUI creates the binding editor UI
func NewBindingsUI(menu *components.BindingsMenuData, onBack, onReset func()) *BindingsUI {
	bui := &BindingsUI{
		Menu:    menu,
		OnBack:  onBack,
		OnReset: onReset,
	}

	bui.loadFonts()
	bui.buildUI()

	return bui
}

func (bui *BindingsUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	// Small faces to fit the 640x360 screen
	bui.titleFace = &text.GoTextFace{Source: fontSource, Size: 18}
	bui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	bui.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
}

func (bui *BindingsUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(3),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	content.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("CONTROL BINDINGS", &bui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	content.AddChild(bui.buildHeaderRow())

	for c := cfg.Control(0); c < cfg.ControlCount; c++ {
		content.AddChild(bui.buildBindingRow(c))
	}

	content.AddChild(bui.buildFooterRow())

	rootContainer.AddChild(content)
	bui.UI = &ebitenui.UI{Container: rootContainer}
}

func (bui *BindingsUI) buildHeaderRow() *widget.Container {
	row := bui.newRow()
	row.AddChild(bui.cellLabel("Control"))
	row.AddChild(bui.cellLabel("P1 Key"))
	row.AddChild(bui.cellLabel("P1 Pad"))
	row.AddChild(bui.cellLabel("P2 Key"))
	row.AddChild(bui.cellLabel("P2 Pad"))
	return row
}

func (bui *BindingsUI) buildBindingRow(control cfg.Control) *widget.Container {
	row := bui.newRow()
	row.AddChild(bui.cellLabel(control.String()))

	for player := 0; player < 2; player++ {
		p := player
		keyBtn := bui.cellButton(func() {
			bui.Menu.Capturing = true
			bui.Menu.CapturePlayer = p
			bui.Menu.CaptureControl = control
			bui.Menu.CaptureDevice = "keyboard"
		})
		bui.keyButtons[control][player] = keyBtn

		padBtn := bui.cellButton(func() {
			bui.Menu.Capturing = true
			bui.Menu.CapturePlayer = p
			bui.Menu.CaptureControl = control
			bui.Menu.CaptureDevice = "controller"
		})
		bui.padButtons[control][player] = padBtn

		// Column order matches the header: key then pad per player
		row.AddChild(keyBtn)
		row.AddChild(padBtn)
	}

	return row
}

func (bui *BindingsUI) buildFooterRow() *widget.Container {
	row := bui.newRow()
	row.AddChild(bui.cellButtonWithText("Back", func() {
		if bui.OnBack != nil {
			bui.OnBack()
		}
	}))
	row.AddChild(bui.cellButtonWithText("Reset defaults", func() {
		if bui.OnReset != nil {
			bui.OnReset()
		}
	}))
	return row
}

func (bui *BindingsUI) newRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
}

func (bui *BindingsUI) cellLabel(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, &bui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{160, 160, 170, 255},
		}),
	)
}

func (bui *BindingsUI) cellButton(onClick func()) *widget.Button {
	return bui.cellButtonWithText("", onClick)
}

func (bui *BindingsUI) cellButtonWithText(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(label, &bui.smallFace, &widget.ButtonTextColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Left: 8, Right: 8, Top: 3, Bottom: 3}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func buttonImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(color.RGBA{60, 70, 90, 255})
	hover := image.NewNineSliceColor(color.RGBA{80, 95, 120, 255})
	pressed := image.NewNineSliceColor(color.RGBA{40, 50, 70, 255})
	return &widget.ButtonImage{Idle: idle, Hover: hover, Pressed: pressed}
}

// Refresh updates the binding labels from the live config. Called every
// frame; the capture target shows a prompt instead of its binding.
func (bui *BindingsUI) Refresh(keyName func(player int, c cfg.Control) string, padName func(player int, c cfg.Control) string) {
	for c := cfg.Control(0); c < cfg.ControlCount; c++ {
		for player := 0; player < 2; player++ {
			keyLabel := keyName(player, c)
			padLabel := padName(player, c)
			if bui.Menu.Capturing && bui.Menu.CapturePlayer == player && bui.Menu.CaptureControl == c {
				switch bui.Menu.CaptureDevice {
				case "keyboard":
					keyLabel = "press key..."
				case "controller":
					padLabel = "press button..."
				}
			}
			bui.keyButtons[c][player].Text().Label = keyLabel
			bui.padButtons[c][player].Text().Label = padLabel
		}
	}
}

// Update runs the ebitenui event loop for one frame
func (bui *BindingsUI) Update() {
	bui.UI.Update()
}
