package adherence

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendInfluxDB Backend = "influxdb"
	BackendBigQuery Backend = "bigquery"
	BackendNone     Backend = "none"
)

type Config struct {
	Backend    Backend
	SQLitePath string

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID string
	BigQueryDataset   string
	BigQueryTable     string
}
