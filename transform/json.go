package transform

import (
	"encoding/json"
	"fmt"

	"github.com/vova616/phys2d/vect"
)

func (xf Transform) MarshalJSON() ([]byte, error) {
	xfData := struct {
		Position vect.Vect
		Rotation vect.Float
	}{
		Position: xf.Position,
		Rotation: xf.Angle(),
	}

	return json.Marshal(&xfData)
}

func (xf *Transform) UnmarshalJSON(data []byte) error {
	xfData := struct {
		Position vect.Vect
		Rotation vect.Float
	}{}

	if err := json.Unmarshal(data, &xfData); err != nil {
		return fmt.Errorf("transform: decoding: %w", err)
	}

	xf.Set(xfData.Position, xfData.Rotation)
	return nil
}
