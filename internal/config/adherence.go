package config

type AdherenceBackend string

const (
	AdherenceSQLite   AdherenceBackend = "sqlite"
	AdherenceInfluxDB AdherenceBackend = "influxdb"
	AdherenceBigQuery AdherenceBackend = "bigquery"
	AdherenceNone     AdherenceBackend = "none"
)

type AdherenceConfig struct {
	Backend    AdherenceBackend `koanf:"backend"`
	SQLitePath string           `koanf:"sqlite_path"`

	InfluxDBURL    string `koanf:"influxdb_url"`
	InfluxDBToken  string `koanf:"influxdb_token"`
	InfluxDBOrg    string `koanf:"influxdb_org"`
	InfluxDBBucket string `koanf:"influxdb_bucket"`

	BigQueryProjectID string `koanf:"bigquery_project_id"`
	BigQueryDataset   string `koanf:"bigquery_dataset"`
	BigQueryTable     string `koanf:"bigquery_table"`
}

func (c *AdherenceConfig) Validate() error {
	switch c.Backend {
	case AdherenceNone, AdherenceInfluxDB, AdherenceBigQuery:
		return nil
	case AdherenceSQLite:
		if c.SQLitePath == "" {
			return ErrSQLitePathMissing
		}
		return nil
	}
	return ErrUnknownAdherenceBackend
}
