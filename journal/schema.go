package journal

const Schema = `
CREATE TABLE IF NOT EXISTS valuations (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	nominal_price REAL NOT NULL,
	coupon_rate REAL NOT NULL,
	discount_rate REAL NOT NULL,
	duration REAL NOT NULL,
	period REAL NOT NULL,
	method TEXT NOT NULL,
	coupon_pv REAL NOT NULL,
	principal_pv REAL NOT NULL,
	present_value REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_valuations_time ON valuations(time);
`

var columns = []string{
	"id", "time", "nominal_price", "coupon_rate", "discount_rate",
	"duration", "period", "method", "coupon_pv", "principal_pv", "present_value",
}
