package models

// ElementDocument is the JSON side file written next to the staged assets for
// every light and camera. Location and rotation are in device space.
type ElementDocument struct {
	Type     string     `json:"type"`
	Name     string     `json:"name"`
	Location [3]float64 `json:"location"`
	Rotation [4]float64 `json:"rotation"`

	LightType      string      `json:"lightType,omitempty"`
	Color          *[3]float64 `json:"color,omitempty"`
	UseDiffuse     *bool       `json:"use_diffuse,omitempty"`
	UseSpecular    *bool       `json:"use_specular,omitempty"`
	OuterConeAngle *float64    `json:"outer_cone_angle,omitempty"`
	InnerConeAngle *float64    `json:"inner_cone_angle,omitempty"`

	NearClipping *float64 `json:"near_clipping,omitempty"`
	FarClipping  *float64 `json:"far_clipping,omitempty"`
}

const (
	DocumentTypeLight  = "Light"
	DocumentTypeCamera = "Camera"
)

func NewLightDocument(l LightDescriptor) *ElementDocument {
	color := l.Color.Array()
	diffuse := l.UseDiffuse
	specular := l.UseSpecular

	doc := &ElementDocument{
		Type:        DocumentTypeLight,
		Name:        l.Name,
		Location:    l.Position.Array(),
		Rotation:    l.Rotation.Array(),
		LightType:   l.Kind.Type(),
		Color:       &color,
		UseDiffuse:  &diffuse,
		UseSpecular: &specular,
	}

	if spot, ok := l.Kind.(SpotLight); ok {
		doc.OuterConeAngle = &spot.OuterCone
		doc.InnerConeAngle = &spot.InnerCone
	}

	return doc
}

func NewCameraDocument(name string, c CameraDescriptor) *ElementDocument {
	near := c.Near
	far := c.Far

	return &ElementDocument{
		Type:         DocumentTypeCamera,
		Name:         name,
		Location:     c.Position.Array(),
		Rotation:     c.Rotation.Array(),
		NearClipping: &near,
		FarClipping:  &far,
	}
}
