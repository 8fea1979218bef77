package window

import "fyne.io/fyne/v2"

const barGap = float32(3)

// pyramidLayout draws bars bottom-aligned with heights as fractions of the
// container height.
type pyramidLayout struct {
	heights []float32
}

func (layout *pyramidLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	count := float32(len(objects))
	width := (size.Width - barGap*(count-1)) / count
	if width < 1 {
		width = 1
	}
	for i, object := range objects {
		fraction := float32(0)
		if i < len(layout.heights) {
			fraction = layout.heights[i]
		}
		height := size.Height * fraction
		if height < 2 {
			height = 2
		}
		object.Move(fyne.NewPos(float32(i)*(width+barGap), size.Height-height))
		object.Resize(fyne.NewSize(width, height))
	}
}

func (layout *pyramidLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	return fyne.NewSize(float32(len(objects))*(2+barGap), 40)
}
