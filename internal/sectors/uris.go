package sectors

// POSC Caesar RDL URIs for the component classes used by the taxonomy.
// Sandbox URIs cover classes the published RDL does not carry yet.
const (
	PumpURI                    = "http://data.posccaesar.org/rdl/RDS327239"
	CentrifugalPumpURI         = "http://data.posccaesar.org/rdl/RDS327241"
	PDPumpURI                  = "http://data.posccaesar.org/rdl/RDS327243"
	CompressorURI              = "http://data.posccaesar.org/rdl/RDS327245"
	AxialCompressorURI         = "http://data.posccaesar.org/rdl/RDS327247"
	ReciprocatingCompressorURI = "http://data.posccaesar.org/rdl/RDS327249"
	BlowerURI                  = "http://data.posccaesar.org/rdl/RDS327251"
	FanURI                     = "http://data.posccaesar.org/rdl/RDS327253"
	TurbineURI                 = "http://data.posccaesar.org/rdl/RDS327255"
	GasTurbineURI              = "http://data.posccaesar.org/rdl/RDS327257"
	SteamTurbineURI            = "http://data.posccaesar.org/rdl/RDS327259"
	MixerURI                   = "http://data.posccaesar.org/rdl/RDS327263"
	CentrifugeURI              = "http://data.posccaesar.org/rdl/RDS327265"
	ConveyorURI                = "http://data.posccaesar.org/rdl/RDS327267"
	VesselURI                  = "http://data.posccaesar.org/rdl/RDS414674"
	PressureVesselURI          = "http://data.posccaesar.org/rdl/RDS414676"
	TankURI                    = "http://data.posccaesar.org/rdl/RDS414678"
	ProcessColumnURI           = "http://data.posccaesar.org/rdl/RDS414680"
	ReactorURI                 = "http://data.posccaesar.org/rdl/RDS414682"
	SeparatorURI               = "http://data.posccaesar.org/rdl/RDS414686"
	SiloURI                    = "http://data.posccaesar.org/rdl/RDS414688"
	FilterURI                  = "http://data.posccaesar.org/rdl/RDS414694"
	HeatExchangerURI           = "http://data.posccaesar.org/rdl/RDS327270"
	ShellTubeHXURI             = "http://data.posccaesar.org/rdl/RDS327272"
	AirCooledHXURI             = "http://sandbox.dexpi.org/rdl/AirCoolingSystem"
	BoilerURI                  = "http://data.posccaesar.org/rdl/RDS327276"
	FurnaceURI                 = "http://data.posccaesar.org/rdl/RDS327278"
	CondenserURI               = "http://data.posccaesar.org/rdl/RDS327280"
	CoolingTowerURI            = "http://data.posccaesar.org/rdl/RDS327284"
	GateValveURI               = "http://data.posccaesar.org/rdl/RDS327290"
	SafetyValveURI             = "http://data.posccaesar.org/rdl/RDS327300"
	ControlValveURI            = "http://data.posccaesar.org/rdl/RDS327302"
	FlowMeterURI               = "http://data.posccaesar.org/rdl/RDS327310"
	LevelIndicatorURI          = "http://data.posccaesar.org/rdl/RDS327316"
	AnalyzerURI                = "http://data.posccaesar.org/rdl/RDS327318"
	TransformerURI             = "http://data.posccaesar.org/rdl/RDS327330"
	GeneratorURI               = "http://data.posccaesar.org/rdl/RDS327332"
	SwitchgearURI              = "http://data.posccaesar.org/rdl/RDS327334"
	CircuitBreakerURI          = "http://data.posccaesar.org/rdl/RDS327336"
	FlareURI                   = "http://data.posccaesar.org/rdl/RDS327352"
	ScrubberURI                = "http://data.posccaesar.org/rdl/RDS414710"
	DeaeratorURI               = "http://data.posccaesar.org/rdl/RDS414714"
	ClarifierURI               = "http://data.posccaesar.org/rdl/RDS414716"
	ThickenerURI               = "http://data.posccaesar.org/rdl/RDS414718"
)
