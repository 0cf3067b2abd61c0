package rotation

import (
	"image/color"

	"github.com/tarasmobil/taras-mobil/common"
)

// LightPalette is the field color cycle used with the light theme.
var LightPalette = []color.RGBA{
	common.MustHexColor("#06B6D4"),
	common.MustHexColor("#0891B2"),
	common.MustHexColor("#0E7490"),
	common.MustHexColor("#06B6D4"),
	common.MustHexColor("#0891B2"),
	common.MustHexColor("#0E7490"),
}

// DarkPalette is the field color cycle used with the dark theme. Same length as LightPalette.
var DarkPalette = []color.RGBA{
	common.MustHexColor("#06B6D4"),
	common.MustHexColor("#00D9FF"),
	common.MustHexColor("#20C997"),
	common.MustHexColor("#06B6D4"),
	common.MustHexColor("#00D9FF"),
	common.MustHexColor("#20C997"),
}
