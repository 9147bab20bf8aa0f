package constants

// Viper configuration keys.
const (
	ViperKeyListenAddr     = "server.addr"
	ViperKeyDebug          = "server.debug"
	ViperKeyPriceSource    = "datasets.price"
	ViperKeyPurchaseSource = "datasets.purchases"
	ViperKeyBoundarySource = "datasets.boundary"
	ViperKeyCapitalsSource = "datasets.capitals"
	ViperKeyStatesSource   = "datasets.states"
	ViperKeyRegionCodes    = "datasets.region_codes"
	ViperKeyBackfillURL    = "datasets.price_backfill_url"
	ViperKeyUSDRate        = "rates.inr_per_usd"
)

// CtxKeyRequestID carries the request id through the echo context and into logs.
const CtxKeyRequestID = "request_id"

const (
	// Price band thresholds, INR per kg.
	PriceBandLow  = 20000
	PriceBandHigh = 30000

	// GramsPerKilogram converts the large mass unit into the small one.
	GramsPerKilogram = 1000

	// DefaultINRPerUSD is the fixed conversion rate used when the config
	// does not override it.
	DefaultINRPerUSD = 83.0

	// TopStatesCount is how many states the ranking chart shows.
	TopStatesCount = 5
)
