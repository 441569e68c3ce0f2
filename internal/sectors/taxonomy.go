// Package sectors holds the critical-infrastructure sector taxonomy used to
// drive research context and catalog coverage analysis. The hierarchy follows
// the CISA sector listing: Sector > SubSector > Facility > Equipment, with
// each equipment type carrying its POSC Caesar RDL class URI.
package sectors

import "github.com/dexpi-labs/equipment-factory/internal/types"

// EquipmentType is one DEXPI component class expected in a facility type.
type EquipmentType struct {
	ComponentClass    string                  `json:"componentClass"`
	ComponentClassURI string                  `json:"componentClassURI"`
	DisplayName       string                  `json:"displayName"`
	Category          types.EquipmentCategory `json:"category"`
	MinQuantity       int                     `json:"minQuantity"`
	MaxQuantity       int                     `json:"maxQuantity"`
}

// Facility is a specific type of plant or installation within a sub-sector.
type Facility struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Equipment   []EquipmentType `json:"equipment"`
}

// SubSector is a major industry segment within a sector.
type SubSector struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Facilities []Facility `json:"facilities"`
}

// Sector is a top-level critical infrastructure sector.
type Sector struct {
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	SubSectors []SubSector `json:"subSectors"`
}

var taxonomy = []Sector{
	{
		Code: "CHEM",
		Name: "Chemical",
		SubSectors: []SubSector{
			{
				Code: "CHEM-BC",
				Name: "Basic Chemicals",
				Facilities: []Facility{
					{
						Code: "CHEM-BC-PETRO",
						Name: "Petrochemical Complex",
						Description: "Integrated petrochemical facility producing ethylene, propylene, and " +
							"aromatics through steam cracking of naphtha or ethane, with downstream " +
							"polymerization units.",
						Equipment: []EquipmentType{
							{ComponentClass: "CentrifugalPump", ComponentClassURI: CentrifugalPumpURI, DisplayName: "Process Centrifugal Pump", Category: types.CategoryRotating, MinQuantity: 50, MaxQuantity: 200},
							{ComponentClass: "CentrifugalCompressor", ComponentClassURI: CompressorURI, DisplayName: "Cracked Gas Compressor", Category: types.CategoryRotating, MinQuantity: 3, MaxQuantity: 8},
							{ComponentClass: "ReciprocatingCompressor", ComponentClassURI: ReciprocatingCompressorURI, DisplayName: "Hydrogen Makeup Compressor", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "ProcessColumn", ComponentClassURI: ProcessColumnURI, DisplayName: "Fractionation Column", Category: types.CategoryStatic, MinQuantity: 6, MaxQuantity: 20},
							{ComponentClass: "Reactor", ComponentClassURI: ReactorURI, DisplayName: "Polymerization Reactor", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "Furnace", ComponentClassURI: FurnaceURI, DisplayName: "Cracking Furnace", Category: types.CategoryHeatTransfer, MinQuantity: 4, MaxQuantity: 12},
							{ComponentClass: "ShellTubeHeatExchanger", ComponentClassURI: ShellTubeHXURI, DisplayName: "Transfer Line Exchanger", Category: types.CategoryHeatTransfer, MinQuantity: 20, MaxQuantity: 80},
							{ComponentClass: "StorageTank", ComponentClassURI: TankURI, DisplayName: "Feedstock Storage Tank", Category: types.CategoryStatic, MinQuantity: 4, MaxQuantity: 20},
							{ComponentClass: "SafetyValve", ComponentClassURI: SafetyValveURI, DisplayName: "Pressure Relief Valve", Category: types.CategoryPiping, MinQuantity: 50, MaxQuantity: 300},
							{ComponentClass: "FlareStack", ComponentClassURI: FlareURI, DisplayName: "Elevated Flare", Category: types.CategoryPiping, MinQuantity: 1, MaxQuantity: 3},
						},
					},
				},
			},
		},
	},
	{
		Code: "ENER",
		Name: "Energy",
		SubSectors: []SubSector{
			{
				Code: "ENER-EL",
				Name: "Electricity",
				Facilities: []Facility{
					{
						Code: "ENER-EL-CCGT",
						Name: "Combined Cycle Gas Turbine Power Plant",
						Description: "High-efficiency power generation facility combining a gas turbine with a " +
							"heat recovery steam generator and steam turbine. Typical capacity 200-1200 MW.",
						Equipment: []EquipmentType{
							{ComponentClass: "GasTurbine", ComponentClassURI: GasTurbineURI, DisplayName: "Gas Turbine Generator", Category: types.CategoryRotating, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "SteamTurbine", ComponentClassURI: SteamTurbineURI, DisplayName: "Steam Turbine Generator", Category: types.CategoryRotating, MinQuantity: 1, MaxQuantity: 2},
							{ComponentClass: "Boiler", ComponentClassURI: BoilerURI, DisplayName: "Heat Recovery Steam Generator", Category: types.CategoryHeatTransfer, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "ElectricGenerator", ComponentClassURI: GeneratorURI, DisplayName: "Synchronous Generator", Category: types.CategoryElectrical, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "Transformer", ComponentClassURI: TransformerURI, DisplayName: "Step-Up Transformer", Category: types.CategoryElectrical, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "Condenser", ComponentClassURI: CondenserURI, DisplayName: "Surface Condenser", Category: types.CategoryHeatTransfer, MinQuantity: 1, MaxQuantity: 2},
							{ComponentClass: "CoolingTower", ComponentClassURI: CoolingTowerURI, DisplayName: "Cooling Tower", Category: types.CategoryHeatTransfer, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "CentrifugalPump", ComponentClassURI: CentrifugalPumpURI, DisplayName: "Boiler Feed Pump", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "Deaerator", ComponentClassURI: DeaeratorURI, DisplayName: "Deaerator", Category: types.CategoryStatic, MinQuantity: 1, MaxQuantity: 2},
							{ComponentClass: "Switchgear", ComponentClassURI: SwitchgearURI, DisplayName: "HV Switchgear", Category: types.CategoryElectrical, MinQuantity: 2, MaxQuantity: 8},
						},
					},
				},
			},
			{
				Code: "ENER-NG",
				Name: "Natural Gas",
				Facilities: []Facility{
					{
						Code: "ENER-NG-PROC",
						Name: "Gas Processing Plant",
						Description: "Natural gas treating and NGL recovery facility removing impurities via " +
							"amine treating, glycol dehydration, and turboexpander cryogenic separation.",
						Equipment: []EquipmentType{
							{ComponentClass: "ProcessColumn", ComponentClassURI: ProcessColumnURI, DisplayName: "Amine Absorber", Category: types.CategoryStatic, MinQuantity: 1, MaxQuantity: 3},
							{ComponentClass: "CentrifugalCompressor", ComponentClassURI: CompressorURI, DisplayName: "Residue Gas Compressor", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "Turbine", ComponentClassURI: TurbineURI, DisplayName: "Turboexpander", Category: types.CategoryRotating, MinQuantity: 1, MaxQuantity: 3},
							{ComponentClass: "ShellTubeHeatExchanger", ComponentClassURI: ShellTubeHXURI, DisplayName: "Gas-Gas Exchanger", Category: types.CategoryHeatTransfer, MinQuantity: 6, MaxQuantity: 20},
							{ComponentClass: "Separator", ComponentClassURI: SeparatorURI, DisplayName: "Inlet Separator", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "GasAnalyzer", ComponentClassURI: AnalyzerURI, DisplayName: "H2S/CO2 Analyzer", Category: types.CategoryInstrumentation, MinQuantity: 4, MaxQuantity: 12},
						},
					},
					{
						Code: "ENER-NG-LNG",
						Name: "LNG Liquefaction Terminal",
						Description: "Large-scale natural gas liquefaction facility cooling gas to -162 C via " +
							"mixed refrigerant or cascade processes, with full-containment storage tanks.",
						Equipment: []EquipmentType{
							{ComponentClass: "CentrifugalCompressor", ComponentClassURI: CompressorURI, DisplayName: "Refrigerant Compressor", Category: types.CategoryRotating, MinQuantity: 3, MaxQuantity: 8},
							{ComponentClass: "GasTurbine", ComponentClassURI: GasTurbineURI, DisplayName: "Compressor Drive Turbine", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "ShellTubeHeatExchanger", ComponentClassURI: ShellTubeHXURI, DisplayName: "Main Cryogenic Exchanger", Category: types.CategoryHeatTransfer, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "StorageTank", ComponentClassURI: TankURI, DisplayName: "LNG Storage Tank", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "CentrifugalPump", ComponentClassURI: CentrifugalPumpURI, DisplayName: "LNG Loading Pump", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 6},
							{ComponentClass: "FlareStack", ComponentClassURI: FlareURI, DisplayName: "Marine Flare", Category: types.CategoryPiping, MinQuantity: 1, MaxQuantity: 2},
						},
					},
				},
			},
		},
	},
	{
		Code: "WATR",
		Name: "Water and Wastewater Systems",
		SubSectors: []SubSector{
			{
				Code: "WATR-DW",
				Name: "Drinking Water",
				Facilities: []Facility{
					{
						Code: "WATR-DW-WTP",
						Name: "Surface Water Treatment Plant",
						Description: "Conventional surface water treatment with coagulation, flocculation, " +
							"sedimentation, granular media filtration, and disinfection.",
						Equipment: []EquipmentType{
							{ComponentClass: "CentrifugalPump", ComponentClassURI: CentrifugalPumpURI, DisplayName: "Raw Water Intake Pump", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "Mixer", ComponentClassURI: MixerURI, DisplayName: "Rapid Mix Flash Mixer", Category: types.CategoryRotating, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "Vessel", ComponentClassURI: ClarifierURI, DisplayName: "Primary Clarifier", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 12},
							{ComponentClass: "Filter", ComponentClassURI: FilterURI, DisplayName: "Granular Media Filter", Category: types.CategoryStatic, MinQuantity: 4, MaxQuantity: 24},
							{ComponentClass: "StorageTank", ComponentClassURI: TankURI, DisplayName: "Clear Well", Category: types.CategoryStatic, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "Analyzer", ComponentClassURI: AnalyzerURI, DisplayName: "Turbidity Analyzer", Category: types.CategoryInstrumentation, MinQuantity: 4, MaxQuantity: 16},
							{ComponentClass: "FlowMeter", ComponentClassURI: FlowMeterURI, DisplayName: "Plant Flow Meter", Category: types.CategoryInstrumentation, MinQuantity: 2, MaxQuantity: 8},
						},
					},
				},
			},
			{
				Code: "WATR-WW",
				Name: "Wastewater",
				Facilities: []Facility{
					{
						Code: "WATR-WW-POTW",
						Name: "Wastewater Treatment Plant (POTW)",
						Description: "Publicly owned treatment works with primary clarification, activated " +
							"sludge secondary treatment, anaerobic digestion, and solids dewatering.",
						Equipment: []EquipmentType{
							{ComponentClass: "CentrifugalPump", ComponentClassURI: CentrifugalPumpURI, DisplayName: "Influent Lift Pump", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "Clarifier", ComponentClassURI: ClarifierURI, DisplayName: "Primary Clarifier", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 12},
							{ComponentClass: "Blower", ComponentClassURI: BlowerURI, DisplayName: "Aeration Blower", Category: types.CategoryRotating, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "PressureVessel", ComponentClassURI: PressureVesselURI, DisplayName: "Anaerobic Digester", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "Vessel", ComponentClassURI: ThickenerURI, DisplayName: "Gravity Thickener", Category: types.CategoryStatic, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "Centrifuge", ComponentClassURI: CentrifugeURI, DisplayName: "Dewatering Centrifuge", Category: types.CategoryRotating, MinQuantity: 1, MaxQuantity: 4},
							{ComponentClass: "Filter", ComponentClassURI: FilterURI, DisplayName: "Tertiary Disc Filter", Category: types.CategoryStatic, MinQuantity: 2, MaxQuantity: 8},
							{ComponentClass: "Analyzer", ComponentClassURI: AnalyzerURI, DisplayName: "Dissolved Oxygen Analyzer", Category: types.CategoryInstrumentation, MinQuantity: 4, MaxQuantity: 16},
						},
					},
				},
			},
		},
	},
}
