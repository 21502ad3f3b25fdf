// internal/domain/models/componenttypes.go
package models

// Canonical component layer identifiers.
//
// These values are stored in the database in the Component.Layer field
// and are used throughout the application as stable keys.
const (
	LayerBusiness    = "business"
	LayerData        = "data"
	LayerApplication = "application"
	LayerTechnology  = "technology"
)

// ComponentLayers is the full set of allowed layer identifiers, in
// presentation order. Dashboards report a count for every layer in this
// slice even when it is zero.
var ComponentLayers = []string{
	LayerBusiness,
	LayerData,
	LayerApplication,
	LayerTechnology,
}

// Canonical component type identifiers.
const (
	TypeBusinessProcess         = "business_process"
	TypeCapability              = "capability"
	TypeValueStream             = "value_stream"
	TypeDataEntity              = "data_entity"
	TypeDataFlow                = "data_flow"
	TypeApplication             = "application"
	TypeService                 = "service"
	TypeInfrastructureComponent = "infrastructure_component"
	TypeTechnologyStandard      = "technology_standard"
)

// ComponentTypes is the full set of allowed component type identifiers.
//
// This slice should be treated as the single source of truth for
// validation. Any new type must be added here and to TypesForLayer to
// be considered valid.
var ComponentTypes = []string{
	TypeBusinessProcess,
	TypeCapability,
	TypeValueStream,
	TypeDataEntity,
	TypeDataFlow,
	TypeApplication,
	TypeService,
	TypeInfrastructureComponent,
	TypeTechnologyStandard,
}

// TypesForLayer maps each layer to the component types valid within it.
var TypesForLayer = map[string][]string{
	LayerBusiness:    {TypeBusinessProcess, TypeCapability, TypeValueStream},
	LayerData:        {TypeDataEntity, TypeDataFlow},
	LayerApplication: {TypeApplication, TypeService},
	LayerTechnology:  {TypeInfrastructureComponent, TypeTechnologyStandard},
}

// ValidLayer reports whether layer is one of the four known layers.
func ValidLayer(layer string) bool {
	_, ok := TypesForLayer[layer]
	return ok
}

// ValidTypeForLayer reports whether typ is a member of the allowed set
// for layer. Unknown layers have no valid types.
func ValidTypeForLayer(layer, typ string) bool {
	for _, t := range TypesForLayer[layer] {
		if t == typ {
			return true
		}
	}
	return false
}
