package input

// ControlSource is a live device reporting normalized pilot intent
// Update is called once per frame before the getters are read
type ControlSource interface {
	Update()
	TurnAmount() float64
	AccelAmount() float64
	Jump() bool
}

// SourceController turns a ControlSource into a Controller
type SourceController struct {
	source ControlSource
}

// NewSourceController wraps a control source
func NewSourceController(source ControlSource) *SourceController {
	return &SourceController{source: source}
}

// Update samples the source; out-of-range amounts are a broken source and panic
func (c *SourceController) Update(Position) ControllerState {
	c.source.Update()
	return MustControllerState(c.source.TurnAmount(), c.source.AccelAmount(), c.source.Jump())
}

// CombinedSource merges several sources; for each value the first source reporting non-neutral wins
type CombinedSource struct {
	sources []ControlSource
}

// NewCombinedSource creates a combined source over the given sources
func NewCombinedSource(sources ...ControlSource) *CombinedSource {
	return &CombinedSource{sources: sources}
}

// Add appends a source; later sources only fill in values earlier ones leave neutral
func (c *CombinedSource) Add(src ControlSource) {
	c.sources = append(c.sources, src)
}

func (c *CombinedSource) Update() {
	for _, s := range c.sources {
		s.Update()
	}
}

func (c *CombinedSource) TurnAmount() float64 {
	for _, s := range c.sources {
		if v := s.TurnAmount(); v != 0 {
			return v
		}
	}
	return 0
}

func (c *CombinedSource) AccelAmount() float64 {
	for _, s := range c.sources {
		if v := s.AccelAmount(); v != 0 {
			return v
		}
	}
	return 0
}

func (c *CombinedSource) Jump() bool {
	for _, s := range c.sources {
		if s.Jump() {
			return true
		}
	}
	return false
}
