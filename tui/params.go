// ABOUTME: Parameter manager for live drawer configuration tuning
// ABOUTME: Handles parameter value adjustments with boundary checking

package tui

import "drawerview/config"

// Parameter represents a tunable drawer setting with constraints
type Parameter struct {
	Name   string
	Value  *float64 // Pointer to actual config field
	Min    float64
	Max    float64
	Step   float64
	Format string

	field func(*config.DrawerConfig) *float64
}

// buildParams returns the tunable parameters pointing into cfg. cfg must
// stay at the same address for as long as the parameters are used.
func buildParams(cfg *config.DrawerConfig) []Parameter {
	specs := []struct {
		name           string
		min, max, step float64
		format         string
		field          func(*config.DrawerConfig) *float64
	}{
		{"Top Margin", 0, 20, 1, "%.0f", func(c *config.DrawerConfig) *float64 { return &c.TopMargin }},
		{"Collapsed Height", 1, 20, 1, "%.0f", func(c *config.DrawerConfig) *float64 { return &c.CollapsedHeight }},
		{"Partially Open Height", 2, 60, 1, "%.0f", func(c *config.DrawerConfig) *float64 { return &c.PartiallyOpenHeight }},
		{"Damping Ratio", 0.1, 2, 0.05, "%.2f", func(c *config.DrawerConfig) *float64 { return &c.DampingRatio }},
		{"Settle Seconds", 0.05, 3, 0.05, "%.2f", func(c *config.DrawerConfig) *float64 { return &c.SettleSeconds }},
		{"Catch-up Seconds", 0.05, 2, 0.05, "%.2f", func(c *config.DrawerConfig) *float64 { return &c.CatchUpSeconds }},
		{"Minimum Velocity", 0, 50, 1, "%.0f", func(c *config.DrawerConfig) *float64 { return &c.MinimumVelocity }},
		{"Prediction Seconds", 0, 1, 0.01, "%.2f", func(c *config.DrawerConfig) *float64 { return &c.PredictionSeconds }},
		{"Rubber Band", 0, 20, 0.5, "%.1f", func(c *config.DrawerConfig) *float64 { return &c.RubberBand }},
		{"Overlay Opacity", 0, 1, 0.05, "%.2f", func(c *config.DrawerConfig) *float64 { return &c.OverlayOpacity }},
		{"Shadow Opacity", 0, 1, 0.05, "%.2f", func(c *config.DrawerConfig) *float64 { return &c.ShadowOpacity }},
	}

	params := make([]Parameter, len(specs))
	for i, s := range specs {
		params[i] = Parameter{
			Name:   s.name,
			Value:  s.field(cfg),
			Min:    s.min,
			Max:    s.max,
			Step:   s.step,
			Format: s.format,
			field:  s.field,
		}
	}

	return params
}

// ParamManager manages drawer parameter adjustments
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Increase() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	newVal := *param.Value + param.Step
	// Snap to max when float steps overshoot by rounding error
	if newVal > param.Max && newVal <= param.Max+0.0001 {
		newVal = param.Max
	}

	if newVal > param.Max {
		return false
	}
	*param.Value = newVal

	return true
}

// Decrease decreases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Decrease() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	newVal := *param.Value - param.Step
	if newVal < param.Min && newVal >= param.Min-0.0001 {
		newVal = param.Min
	}

	if newVal < param.Min {
		return false
	}
	*param.Value = newVal

	return true
}

// ResetToDefaults resets all parameters to their values in defaults
func (pm *ParamManager) ResetToDefaults(defaults config.DrawerConfig) {
	for i := range pm.params {
		if pm.params[i].field == nil {
			continue
		}
		*pm.params[i].Value = *pm.params[i].field(&defaults)
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}
	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
