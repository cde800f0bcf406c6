package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrNoTheme = errors.New("theme: no theme found")

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name           string      `json:"name"`
	SquareLight    tcell.Color `json:"squareLight"`
	SquareDark     tcell.Color `json:"squareDark"`
	SquareSelected tcell.Color `json:"squareSelected"`
	SquareLast     tcell.Color `json:"squareLast"`
	MoveDot        tcell.Color `json:"moveDot"`
	White          tcell.Color `json:"white"`
	Black          tcell.Color `json:"black"`
	Rank           tcell.Color `json:"rank"`
	File           tcell.Color `json:"file"`
	MoveLabelBg    tcell.Color `json:"moveLabelBg"`
	MoveLabelFg    tcell.Color `json:"moveLabelFg"`
	Banner         tcell.Color `json:"banner"`
	BannerBg       tcell.Color `json:"bannerBg"`
	Msg            tcell.Color `json:"msg"`
	MoveBox        tcell.Color `json:"moveBox"`
	Title          tcell.Color `json:"title"`
	Button         tcell.Color `json:"button"`
	ButtonText     tcell.Color `json:"buttonText"`
}

// ThemeHex is the JSON form of a Theme, colors written as hex strings
type ThemeHex struct {
	Name           string `json:"name"`
	SquareLight    string `json:"squareLight"`
	SquareDark     string `json:"squareDark"`
	SquareSelected string `json:"squareSelected"`
	SquareLast     string `json:"squareLast"`
	MoveDot        string `json:"moveDot"`
	White          string `json:"white"`
	Black          string `json:"black"`
	Rank           string `json:"rank"`
	File           string `json:"file"`
	MoveLabelBg    string `json:"moveLabelBg"`
	MoveLabelFg    string `json:"moveLabelFg"`
	Banner         string `json:"banner"`
	BannerBg       string `json:"bannerBg"`
	Msg            string `json:"msg"`
	MoveBox        string `json:"moveBox"`
	Title          string `json:"title"`
	Button         string `json:"button"`
	ButtonText     string `json:"buttonText"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:           t.Name,
		SquareLight:    fmtHex(t.SquareLight.Hex()),
		SquareDark:     fmtHex(t.SquareDark.Hex()),
		SquareSelected: fmtHex(t.SquareSelected.Hex()),
		SquareLast:     fmtHex(t.SquareLast.Hex()),
		MoveDot:        fmtHex(t.MoveDot.Hex()),
		White:          fmtHex(t.White.Hex()),
		Black:          fmtHex(t.Black.Hex()),
		Rank:           fmtHex(t.Rank.Hex()),
		File:           fmtHex(t.File.Hex()),
		MoveLabelBg:    fmtHex(t.MoveLabelBg.Hex()),
		MoveLabelFg:    fmtHex(t.MoveLabelFg.Hex()),
		Banner:         fmtHex(t.Banner.Hex()),
		BannerBg:       fmtHex(t.BannerBg.Hex()),
		Msg:            fmtHex(t.Msg.Hex()),
		MoveBox:        fmtHex(t.MoveBox.Hex()),
		Title:          fmtHex(t.Title.Hex()),
		Button:         fmtHex(t.Button.Hex()),
		ButtonText:     fmtHex(t.ButtonText.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:           t.Name,
		SquareLight:    tcell.GetColor(t.SquareLight),
		SquareDark:     tcell.GetColor(t.SquareDark),
		SquareSelected: tcell.GetColor(t.SquareSelected),
		SquareLast:     tcell.GetColor(t.SquareLast),
		MoveDot:        tcell.GetColor(t.MoveDot),
		White:          tcell.GetColor(t.White),
		Black:          tcell.GetColor(t.Black),
		Rank:           tcell.GetColor(t.Rank),
		File:           tcell.GetColor(t.File),
		MoveLabelBg:    tcell.GetColor(t.MoveLabelBg),
		MoveLabelFg:    tcell.GetColor(t.MoveLabelFg),
		Banner:         tcell.GetColor(t.Banner),
		BannerBg:       tcell.GetColor(t.BannerBg),
		Msg:            tcell.GetColor(t.Msg),
		MoveBox:        tcell.GetColor(t.MoveBox),
		Title:          tcell.GetColor(t.Title),
		Button:         tcell.GetColor(t.Button),
		ButtonText:     tcell.GetColor(t.ButtonText),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument. The built-in themes
// are searched after the provided ones.
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	// First check if want is in the provided config (override)
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range BuiltinThemes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, fmt.Errorf("%w: %q", ErrNoTheme, want)
}

// LoadThemes reads a JSON array of ThemeHex from path
func LoadThemes(path string) ([]ThemeHex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var themes []ThemeHex
	if err := json.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("theme: decode %s: %w", path, err)
	}
	return themes, nil
}

// Blend lays over on top of base with the given alpha (0-255), the way a
// translucent sprite is blitted onto the board
func Blend(base, over tcell.Color, alpha uint8) tcell.Color {
	if !base.Valid() || !over.Valid() {
		return over
	}
	blended := toColorful(base).BlendRgb(toColorful(over), float64(alpha)/255).Clamped()
	r, g, b := blended.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ThemeSavanna is the default theme
var ThemeSavanna = Theme{
	Name:           "savanna",
	SquareLight:    tcell.NewRGBColor(194, 209, 165),
	SquareDark:     tcell.NewRGBColor(110, 128, 93),
	SquareSelected: tcell.NewRGBColor(122, 158, 196),
	SquareLast:     tcell.NewRGBColor(214, 196, 120),
	MoveDot:        tcell.NewRGBColor(100, 100, 100),
	White:          tcell.NewRGBColor(255, 255, 255),
	Black:          tcell.NewRGBColor(0, 0, 0),
	Rank:           tcell.Color247,
	File:           tcell.Color247,
	MoveLabelBg:    tcell.Color252,
	MoveLabelFg:    tcell.ColorBlack,
	Banner:         tcell.ColorBlack,
	BannerBg:       tcell.ColorWhite,
	Msg:            tcell.Color160,
	MoveBox:        tcell.ColorDefault,
	Title:          tcell.Color136,
	Button:         tcell.ColorBlack,
	ButtonText:     tcell.ColorWhite,
}

// ThemeBasic sticks to the xterm 256 palette for terminals without true color
var ThemeBasic = Theme{
	Name:           "basic",
	SquareLight:    tcell.Color230,
	SquareDark:     tcell.Color188,
	SquareSelected: tcell.Color110,
	SquareLast:     tcell.Color226,
	MoveDot:        tcell.Color241,
	White:          tcell.Color232,
	Black:          tcell.Color232,
	Rank:           tcell.Color247,
	File:           tcell.Color247,
	MoveLabelBg:    tcell.Color252,
	MoveLabelFg:    tcell.ColorBlack,
	Banner:         tcell.ColorBlack,
	BannerBg:       tcell.Color252,
	Msg:            tcell.Color160,
	MoveBox:        tcell.ColorDefault,
	Title:          tcell.Color136,
	Button:         tcell.Color236,
	ButtonText:     tcell.ColorWhite,
}

var BuiltinThemes = []Theme{ThemeSavanna, ThemeBasic}
