package systems

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/spaghettifunk/gondola/engine/assets"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/math"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type BitmapFontInternalData struct {
	LoadedResource *resources.Resource
	// Casted pointer to resource data for convenience.
	ResourceData *metadata.BitmapFontResourceData
}

type SystemFontVariantData struct {
	// Codepoints rendered into the atlas. Ascii is always present, further
	// codepoints are appended on demand and trigger an atlas rebuild.
	Codepoints []rune
	// The face rasterizing glyphs at this variant's size.
	Face font.Face
}

type BitmapFontLookup struct {
	ID             uint16
	ReferenceCount uint16
	Font           *BitmapFontInternalData
}

type SystemFontLookup struct {
	ID             uint16
	ReferenceCount uint16
	SizeVariants   []*metadata.FontData
	// A copy of all this is kept for each for convenience.
	BinarySize uint64
	Face       string
	Font       *sfnt.Font
	Index      int32
}

// The fixed atlas width glyphs are shelf packed into. The height grows to
// the next power of two that fits the packed rows.
const systemFontAtlasWidth = 512

type FontSystem struct {
	Config           *metadata.FontSystemConfig
	BitmapFontLookup map[string]uint16
	SystemFontLookup map[string]uint16
	BitmapFonts      []*BitmapFontLookup
	SystemFonts      []*SystemFontLookup
	// sub systems
	textureSystem  *TextureSystem
	geometrySystem *GeometrySystem
	assetManager   *assets.AssetManager
}

func NewFontSystem(config *metadata.FontSystemConfig, ts *TextureSystem, gs *GeometrySystem, am *assets.AssetManager) (*FontSystem, error) {
	if config.MaxBitmapFontCount == 0 || config.MaxSystemFontCount == 0 {
		err := fmt.Errorf("func NewFontSystem - config.MaxBitmapFontCount and config.MaxSystemFontCount must be > 0")
		core.LogFatal(err.Error())
		return nil, err
	}

	fs := &FontSystem{
		Config:           config,
		BitmapFontLookup: make(map[string]uint16),
		SystemFontLookup: make(map[string]uint16),
		BitmapFonts:      make([]*BitmapFontLookup, config.MaxBitmapFontCount),
		SystemFonts:      make([]*SystemFontLookup, config.MaxSystemFontCount),
		textureSystem:    ts,
		geometrySystem:   gs,
		assetManager:     am,
	}

	// Invalidate all entries in both arrays.
	for i := 0; i < int(config.MaxBitmapFontCount); i++ {
		fs.BitmapFonts[i] = &BitmapFontLookup{
			ID: metadata.InvalidIDUint16,
		}
	}
	for i := 0; i < int(config.MaxSystemFontCount); i++ {
		fs.SystemFonts[i] = &SystemFontLookup{
			ID: metadata.InvalidIDUint16,
		}
	}

	return fs, nil
}

// Initialize loads the fonts named in the configuration. It runs after the
// renderer is up because atlas textures are uploaded here.
func (fs *FontSystem) Initialize() error {
	for _, config := range fs.Config.BitmapFontConfigs {
		if err := fs.LoadBitmapFont(config); err != nil {
			core.LogError("failed to load bitmap font '%s': %s", config.Name, err.Error())
			return err
		}
	}
	for _, config := range fs.Config.SystemFontConfigs {
		if err := fs.LoadSystemFont(config); err != nil {
			core.LogError("failed to load system font '%s': %s", config.Name, err.Error())
			return err
		}
	}
	return nil
}

func (fs *FontSystem) Shutdown() error {
	// Cleanup bitmap fonts.
	for i := uint16(0); i < uint16(fs.Config.MaxBitmapFontCount); i++ {
		if fs.BitmapFonts[i].ID != metadata.InvalidIDUint16 {
			fs.cleanupFontData(fs.BitmapFonts[i].Font.ResourceData.Data)
			fs.BitmapFonts[i].ID = metadata.InvalidIDUint16
		}
	}

	// Cleanup system fonts, each variant separately.
	for i := uint16(0); i < uint16(fs.Config.MaxSystemFontCount); i++ {
		if fs.SystemFonts[i].ID != metadata.InvalidIDUint16 {
			for _, variant := range fs.SystemFonts[i].SizeVariants {
				fs.cleanupFontData(variant)
			}
			fs.SystemFonts[i].SizeVariants = nil
			fs.SystemFonts[i].ID = metadata.InvalidIDUint16
		}
	}

	return nil
}

func (fs *FontSystem) cleanupFontData(font *metadata.FontData) {
	// Release the texture map resources.
	renderer.TextureMapReleaseResources(font.Atlas)

	if font.FontType == metadata.FONT_TYPE_BITMAP && font.Atlas.Texture != nil {
		// Bitmap font pages live in the texture system, release the reference.
		fs.textureSystem.Release(font.Atlas.Texture.Name)
	} else if font.FontType == metadata.FONT_TYPE_SYSTEM && font.Atlas.Texture != nil {
		// Generated atlases are owned here.
		renderer.TextureDestroy(font.Atlas.Texture)
	}
	font.Atlas.Texture = nil
}

func (fs *FontSystem) LoadBitmapFont(config *metadata.BitmapFontConfig) error {
	if id, ok := fs.BitmapFontLookup[config.Name]; ok && id != metadata.InvalidIDUint16 {
		core.LogWarn("a font named '%s' already exists and will not be loaded again", config.Name)
		// Not a hard error, return success since it already exists and can be used.
		return nil
	}

	// Get a new id.
	id := metadata.InvalidIDUint16
	for i := uint16(0); i < uint16(fs.Config.MaxBitmapFontCount); i++ {
		if fs.BitmapFonts[i].ID == metadata.InvalidIDUint16 {
			id = i
			break
		}
	}
	if id == metadata.InvalidIDUint16 {
		return fmt.Errorf("no space left to allocate a new bitmap font, adjust MaxBitmapFontCount")
	}

	lookup := fs.BitmapFonts[id]
	if lookup.Font == nil {
		lookup.Font = &BitmapFontInternalData{}
	}

	res, err := fs.assetManager.LoadAsset(config.ResourceName, resources.ResourceTypeBitmapFont, nil)
	if err != nil {
		core.LogError("failed to load bitmap font resource '%s'", config.ResourceName)
		return err
	}
	lookup.Font.LoadedResource = res

	// Keep a casted pointer to the resource data for convenience.
	resourceData, ok := res.Data.(*metadata.BitmapFontResourceData)
	if !ok {
		return fmt.Errorf("asset '%s' did not load as bitmap font data", config.ResourceName)
	}
	lookup.Font.ResourceData = resourceData

	// Acquire the page texture.
	// TODO: only accounts for one page at the moment.
	texture, err := fs.textureSystem.Acquire(resourceData.Pages[0].Name, true)
	if err != nil {
		return err
	}
	if resourceData.Data.Atlas == nil {
		resourceData.Data.Atlas = &metadata.TextureMap{}
	}
	resourceData.Data.Atlas.Texture = texture

	if err := fs.setupFontData(resourceData.Data); err != nil {
		return err
	}

	// Set the entry id here last before updating the hashtable.
	fs.BitmapFontLookup[config.Name] = id
	lookup.ID = id

	return nil
}

func (fs *FontSystem) LoadSystemFont(config *metadata.SystemFontConfig) error {
	// System font resources can contain multiple faces, so a copy of the
	// parsed collection is held in each resulting lookup.
	var resourceData *metadata.SystemFontResourceData

	res, err := fs.assetManager.LoadAsset(config.ResourceName, resources.ResourceTypeSystemFont, nil)
	if err != nil {
		// Fall back to the bundled Go Regular face so text still renders.
		core.LogWarn("system font resource '%s' failed to load, falling back to Go Regular: %s", config.ResourceName, err.Error())
		collection, parseErr := sfnt.ParseCollection(goregular.TTF)
		if parseErr != nil {
			return err
		}
		resourceData = &metadata.SystemFontResourceData{
			Fonts:      []*metadata.SystemFontFace{{Name: config.Name}},
			FontBinary: collection,
			BinarySize: uint64(len(goregular.TTF)),
		}
	} else {
		var ok bool
		resourceData, ok = res.Data.(*metadata.SystemFontResourceData)
		if !ok {
			return fmt.Errorf("asset '%s' did not load as system font data", config.ResourceName)
		}
	}

	for i := 0; i < len(resourceData.Fonts); i++ {
		face := resourceData.Fonts[i]

		// Make sure a font with this name doesn't already exist.
		if id, ok := fs.SystemFontLookup[face.Name]; ok && id != metadata.InvalidIDUint16 {
			core.LogWarn("a font named '%s' already exists and will not be loaded again", face.Name)
			// Not a hard error, return success since it already exists and can be used.
			return nil
		}

		// Get a new id.
		id := metadata.InvalidIDUint16
		for j := uint16(0); j < uint16(fs.Config.MaxSystemFontCount); j++ {
			if fs.SystemFonts[j].ID == metadata.InvalidIDUint16 {
				id = j
				break
			}
		}
		if id == metadata.InvalidIDUint16 {
			return fmt.Errorf("no space left to allocate a new system font, adjust MaxSystemFontCount")
		}

		fontFace, err := resourceData.FontBinary.Font(i)
		if err != nil {
			return fmt.Errorf("collection '%s' has no face at index %d: %w", config.ResourceName, i, err)
		}

		lookup := fs.SystemFonts[id]
		lookup.BinarySize = resourceData.BinarySize
		lookup.Face = face.Name
		lookup.Font = fontFace
		lookup.Index = int32(i)
		lookup.SizeVariants = []*metadata.FontData{}

		// Create a default size variant.
		variant, err := fs.createSystemFontVariant(lookup, config.DefaultSize, face.Name)
		if err != nil {
			core.LogError("failed to create variant: %s, index %d: %s", face.Name, i, err.Error())
			continue
		}
		if err := fs.setupFontData(variant); err != nil {
			core.LogError("failed to setup font data: %s", err.Error())
			continue
		}
		lookup.SizeVariants = append(lookup.SizeVariants, variant)

		// Set the entry id here last before updating the hashtable.
		lookup.ID = id
		fs.SystemFontLookup[face.Name] = id
	}

	return nil
}

func (fs *FontSystem) setupFontData(font *metadata.FontData) error {
	font.Atlas.FilterMagnify = metadata.TextureFilterModeLinear
	font.Atlas.FilterMinify = metadata.TextureFilterModeLinear
	font.Atlas.RepeatU = metadata.TextureRepeatClampToEdge
	font.Atlas.RepeatV = metadata.TextureRepeatClampToEdge
	font.Atlas.Use = metadata.TextureUseMapAtlas

	if err := renderer.TextureMapAcquireResources(font.Atlas); err != nil {
		core.LogError("unable to acquire resources for font atlas texture map")
		return err
	}

	// Check for a tab glyph, as there may not always be one exported. If
	// there is, use its advance as is. Otherwise fall back to space x4,
	// then to font size x4.
	if font.TabXAdvance == 0 {
		for _, g := range font.Glyphs {
			if g.Codepoint == '\t' {
				font.TabXAdvance = float32(g.XAdvance)
				break
			}
		}
		if font.TabXAdvance == 0 {
			for _, g := range font.Glyphs {
				if g.Codepoint == ' ' {
					font.TabXAdvance = float32(g.XAdvance) * 4
					break
				}
			}
			if font.TabXAdvance == 0 {
				font.TabXAdvance = float32(font.Size) * 4
			}
		}
	}
	return nil
}

/**
 * @brief Acquires font data of the given name and size and assigns it to
 * the text. For system fonts a size variant is created on demand.
 */
func (fs *FontSystem) Acquire(fontName string, fontSize uint16, text *metadata.UIText) error {
	if text.UITextType == metadata.UI_TEXT_TYPE_BITMAP {
		id, ok := fs.BitmapFontLookup[fontName]
		if !ok || id == metadata.InvalidIDUint16 {
			return fmt.Errorf("a bitmap font named '%s' was not found, font acquisition failed", fontName)
		}

		lookup := fs.BitmapFonts[id]

		// Assign the data, increment the reference.
		text.Data = lookup.Font.ResourceData.Data
		lookup.ReferenceCount++
		return nil
	}

	if text.UITextType == metadata.UI_TEXT_TYPE_SYSTEM {
		id, ok := fs.SystemFontLookup[fontName]
		if !ok || id == metadata.InvalidIDUint16 {
			return fmt.Errorf("a system font named '%s' was not found, font acquisition failed", fontName)
		}

		lookup := fs.SystemFonts[id]

		// Search the size variants for the correct size.
		for _, variant := range lookup.SizeVariants {
			if variant.Size == uint32(fontSize) {
				text.Data = variant
				lookup.ReferenceCount++
				return nil
			}
		}

		// The size variant doesn't exist yet. Create it.
		variant, err := fs.createSystemFontVariant(lookup, fontSize, fontName)
		if err != nil {
			return fmt.Errorf("failed to create variant: %s, index %d, size %d: %w", lookup.Face, lookup.Index, fontSize, err)
		}
		if err := fs.setupFontData(variant); err != nil {
			return err
		}
		lookup.SizeVariants = append(lookup.SizeVariants, variant)

		text.Data = variant
		lookup.ReferenceCount++
		return nil
	}

	return fmt.Errorf("unrecognized font type: %d", text.UITextType)
}

func (fs *FontSystem) Release(text *metadata.UIText) error {
	if text == nil || text.Data == nil {
		return nil
	}

	switch text.Data.FontType {
	case metadata.FONT_TYPE_BITMAP:
		if id, ok := fs.BitmapFontLookup[text.Data.Face]; ok && id != metadata.InvalidIDUint16 {
			if fs.BitmapFonts[id].ReferenceCount > 0 {
				fs.BitmapFonts[id].ReferenceCount--
			}
		}
	case metadata.FONT_TYPE_SYSTEM:
		if id, ok := fs.SystemFontLookup[text.Data.Face]; ok && id != metadata.InvalidIDUint16 {
			if fs.SystemFonts[id].ReferenceCount > 0 {
				fs.SystemFonts[id].ReferenceCount--
			}
		}
	}
	text.Data = nil
	return nil
}

func (fs *FontSystem) createSystemFontVariant(lookup *SystemFontLookup, size uint16, fontName string) (*metadata.FontData, error) {
	face, err := opentype.NewFace(lookup.Font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	variant := &metadata.FontData{
		Size:     uint32(size),
		FontType: metadata.FONT_TYPE_SYSTEM,
		Face:     fontName,
		Atlas:    &metadata.TextureMap{},
	}

	// Ascii 32-126 is always present, plus the replacement character for
	// anything the face cannot map.
	data := &SystemFontVariantData{
		Face:       face,
		Codepoints: make([]rune, 0, 96),
	}
	data.Codepoints = append(data.Codepoints, '�')
	for c := rune(32); c < 127; c++ {
		data.Codepoints = append(data.Codepoints, c)
	}
	variant.InternalData = data

	metrics := face.Metrics()
	variant.LineHeight = int32(metrics.Height.Ceil())
	variant.Baseline = int32(metrics.Ascent.Ceil())

	if err := fs.rebuildSystemFontVariantAtlas(lookup, variant); err != nil {
		return nil, err
	}

	return variant, nil
}

// rebuildSystemFontVariantAtlas shelf packs every known codepoint of the
// variant into an RGBA atlas, uploads it and regenerates the glyph and
// kerning tables.
func (fs *FontSystem) rebuildSystemFontVariantAtlas(lookup *SystemFontLookup, variant *metadata.FontData) error {
	data, ok := variant.InternalData.(*SystemFontVariantData)
	if !ok {
		return fmt.Errorf("variant '%s' holds no system font data", variant.Face)
	}
	face := data.Face

	type placedGlyph struct {
		r       rune
		x, y    int
		w, h    int
		bounds  fixed.Rectangle26_6
		advance fixed.Int26_6
	}

	const padding = 1
	placed := make([]placedGlyph, 0, len(data.Codepoints))
	penX, penY, rowHeight := padding, padding, 0
	for _, r := range data.Codepoints {
		bounds, advance, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		w := (bounds.Max.X - bounds.Min.X).Ceil()
		h := (bounds.Max.Y - bounds.Min.Y).Ceil()
		if penX+w+padding > systemFontAtlasWidth {
			penX = padding
			penY += rowHeight + padding
			rowHeight = 0
		}
		placed = append(placed, placedGlyph{r: r, x: penX, y: penY, w: w, h: h, bounds: bounds, advance: advance})
		penX += w + padding
		if h > rowHeight {
			rowHeight = h
		}
	}

	atlasHeight := int(math.NextPow2(uint32(penY + rowHeight + padding)))
	variant.AtlasSizeX = systemFontAtlasWidth
	variant.AtlasSizeY = int32(atlasHeight)

	// Render every glyph at its packed spot. The dot is offset so the
	// glyph's bounding box lands exactly on the packed cell.
	img := image.NewRGBA(image.Rect(0, 0, systemFontAtlasWidth, atlasHeight))
	drawer := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for _, pg := range placed {
		drawer.Dot = fixed.Point26_6{
			X: fixed.I(pg.x) - pg.bounds.Min.X,
			Y: fixed.I(pg.y) - pg.bounds.Min.Y,
		}
		drawer.DrawString(string(pg.r))
	}

	// Regenerate glyphs. Offsets are relative to the text cursor with y
	// growing downward from the line top.
	ascent := face.Metrics().Ascent
	variant.Glyphs = make([]*metadata.FontGlyph, 0, len(placed))
	for _, pg := range placed {
		variant.Glyphs = append(variant.Glyphs, &metadata.FontGlyph{
			Codepoint: int32(pg.r),
			X:         uint16(pg.x),
			Y:         uint16(pg.y),
			Width:     uint16(pg.w),
			Height:    uint16(pg.h),
			XOffset:   int16(pg.bounds.Min.X.Floor()),
			YOffset:   int16((ascent + pg.bounds.Min.Y).Floor()),
			XAdvance:  int16(pg.advance.Ceil()),
			PageID:    0,
		})
	}

	// Regenerate kernings, keeping only the nonzero pairs.
	kernings := make([]*metadata.FontKerning, 0)
	for _, first := range data.Codepoints {
		for _, second := range data.Codepoints {
			if amount := face.Kern(first, second); amount != 0 {
				kernings = append(kernings, &metadata.FontKerning{
					Codepoint0: int32(first),
					Codepoint1: int32(second),
					Amount:     int16(amount.Round()),
				})
			}
		}
	}
	variant.Kernings = kernings

	// Upload the atlas. Rebuilds replace the texture wholesale since the
	// dimensions may have grown.
	if variant.Atlas.Texture == nil {
		variant.Atlas.Texture = &metadata.Texture{
			ID:         metadata.InvalidID,
			Name:       core.IdentifierNewName(fmt.Sprintf("system_text_atlas_%s_sz%d", variant.Face, variant.Size)),
			Generation: metadata.InvalidID,
		}
	} else {
		renderer.TextureDestroy(variant.Atlas.Texture)
	}

	texture := variant.Atlas.Texture
	texture.Width = uint32(systemFontAtlasWidth)
	texture.Height = uint32(atlasHeight)
	texture.ChannelCount = 4
	texture.Flags = 0
	if err := renderer.TextureCreate(img.Pix, texture); err != nil {
		return err
	}
	if texture.Generation == metadata.InvalidID {
		texture.Generation = 0
	} else {
		texture.Generation++
	}

	return nil
}

func (fs *FontSystem) verifySystemFontSizeVariant(lookup *SystemFontLookup, variant *metadata.FontData, text string) error {
	data, ok := variant.InternalData.(*SystemFontVariantData)
	if !ok {
		return fmt.Errorf("variant '%s' holds no system font data", variant.Face)
	}

	added := 0
	for _, r := range text {
		// Ascii codepoints are always included.
		if r < 128 {
			continue
		}
		found := false
		for _, cp := range data.Codepoints {
			if cp == r {
				found = true
				break
			}
		}
		if !found {
			data.Codepoints = append(data.Codepoints, r)
			added++
		}
	}

	// If codepoints were added, rebuild the atlas.
	if added > 0 {
		return fs.rebuildSystemFontVariantAtlas(lookup, variant)
	}
	return nil
}

// VerifyAtlas makes sure the font's atlas covers every codepoint of the
// given text. Bitmap fonts are fixed at export time and need no work.
func (fs *FontSystem) VerifyAtlas(font *metadata.FontData, text string) error {
	if font.FontType == metadata.FONT_TYPE_BITMAP {
		return nil
	}
	if font.FontType == metadata.FONT_TYPE_SYSTEM {
		id, ok := fs.SystemFontLookup[font.Face]
		if !ok || id == metadata.InvalidIDUint16 {
			return fmt.Errorf("a system font named '%s' was not found, atlas verification failed", font.Face)
		}
		return fs.verifySystemFontSizeVariant(fs.SystemFonts[id], font, text)
	}
	return fmt.Errorf("VerifyAtlas failed: unknown font type")
}

/**
 * @brief Creates a text object with the given font and content. The
 * glyph quads are built and uploaded here, one textured quad per
 * printable character.
 */
func (fs *FontSystem) UITextCreate(textType metadata.UITextType, fontName string, fontSize uint16, textContent string) (*metadata.UIText, error) {
	outText := &metadata.UIText{
		UITextType: textType,
		Colour:     mgl32.Vec4{1.0, 1.0, 1.0, 1.0},
	}

	if err := fs.Acquire(fontName, fontSize, outText); err != nil {
		return nil, fmt.Errorf("unable to acquire font '%s', text cannot be created: %w", fontName, err)
	}

	outText.Text = textContent

	// Verify the atlas has the glyphs needed before building quads.
	if err := fs.VerifyAtlas(outText.Data, textContent); err != nil {
		return nil, err
	}

	outText.UniqueID = core.IdentifierAcquireID(outText)

	config := fs.buildTextGeometryConfig(outText)
	geometry, err := fs.geometrySystem.AcquireFromConfig(config, true)
	if err != nil {
		return nil, err
	}
	outText.Geometry = geometry

	return outText, nil
}

// UITextSetText replaces the content of the text object and reuploads its
// quad geometry in place.
func (fs *FontSystem) UITextSetText(text *metadata.UIText, content string) error {
	if text == nil || text.Text == content {
		return nil
	}
	text.Text = content

	if err := fs.VerifyAtlas(text.Data, content); err != nil {
		return err
	}

	return fs.geometrySystem.UpdateFromConfig(text.Geometry, fs.buildTextGeometryConfig(text))
}

func (fs *FontSystem) UITextSetPosition(text *metadata.UIText, position mgl32.Vec3) {
	text.Position = position
}

func (fs *FontSystem) UITextDestroy(text *metadata.UIText) {
	if text == nil {
		return
	}
	if text.Geometry != nil {
		fs.geometrySystem.Release(text.Geometry)
		text.Geometry = nil
	}
	if err := fs.Release(text); err != nil {
		core.LogWarn(err.Error())
	}
	if err := core.IdentifierReleaseID(text.UniqueID); err != nil {
		core.LogWarn(err.Error())
	}
}

// buildTextGeometryConfig lays the text out glyph by glyph and returns a
// geometry of one textured quad per printable character.
func (fs *FontSystem) buildTextGeometryConfig(text *metadata.UIText) *metadata.GeometryConfig {
	runes := []rune(text.Text)

	positions := make([]float32, 0, len(runes)*12)
	texcoords := make([]float32, 0, len(runes)*8)
	indices := make([]uint32, 0, len(runes)*6)

	x := float32(0)
	y := float32(0)
	quad := uint32(0)

	for i, r := range runes {
		// Continue to the next line for newline.
		if r == '\n' {
			x = 0
			y += float32(text.Data.LineHeight)
			continue
		}
		if r == '\t' {
			x += text.Data.TabXAdvance
			continue
		}

		g := glyphFor(text.Data, r)
		if g == nil {
			core.LogWarn("font '%s' has no glyph or fallback for codepoint %d, skipping", text.Data.Face, r)
			continue
		}

		minX := x + float32(g.XOffset)
		minY := y + float32(g.YOffset)
		maxX := minX + float32(g.Width)
		maxY := minY + float32(g.Height)

		tMinX := float32(g.X) / float32(text.Data.AtlasSizeX)
		tMaxX := float32(g.X+g.Width) / float32(text.Data.AtlasSizeX)
		tMinY := float32(g.Y) / float32(text.Data.AtlasSizeY)
		tMaxY := float32(g.Y+g.Height) / float32(text.Data.AtlasSizeY)
		// Bitmap font pages decode bottom-up, so their v axis is flipped.
		if text.UITextType == metadata.UI_TEXT_TYPE_BITMAP {
			tMinY = 1.0 - tMinY
			tMaxY = 1.0 - tMaxY
		}

		positions = append(positions,
			minX, minY, 0.0,
			maxX, minY, 0.0,
			maxX, maxY, 0.0,
			minX, maxY, 0.0,
		)
		texcoords = append(texcoords,
			tMinX, tMinY,
			tMaxX, tMinY,
			tMaxX, tMaxY,
			tMinX, tMaxY,
		)
		base := quad * 4
		indices = append(indices, base+0, base+1, base+2, base+0, base+2, base+3)
		quad++

		x += float32(g.XAdvance) + kerningFor(text.Data, runes, i)
	}

	// An empty string still needs a valid buffer, give it one degenerate quad.
	if quad == 0 {
		positions = append(positions, make([]float32, 12)...)
		texcoords = append(texcoords, make([]float32, 8)...)
		indices = append(indices, 0, 1, 2, 0, 2, 3)
	}

	return &metadata.GeometryConfig{
		Name:          fmt.Sprintf("text_%d", text.UniqueID),
		PrimitiveMode: metadata.PrimitiveModeTriangles,
		Positions:     positions,
		Texcoords:     texcoords,
		Indices:       indices,
	}
}

func glyphFor(data *metadata.FontData, r rune) *metadata.FontGlyph {
	for _, g := range data.Glyphs {
		if g.Codepoint == int32(r) {
			return g
		}
	}
	// Fall back to the replacement glyph.
	for _, g := range data.Glyphs {
		if g.Codepoint == int32('�') {
			return g
		}
	}
	return nil
}

func kerningFor(data *metadata.FontData, runes []rune, index int) float32 {
	if index+1 >= len(runes) {
		return 0
	}
	current := int32(runes[index])
	next := int32(runes[index+1])
	for _, k := range data.Kernings {
		if k.Codepoint0 == current && k.Codepoint1 == next {
			return float32(k.Amount)
		}
	}
	return 0
}
