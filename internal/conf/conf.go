package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Auth   *Auth   `json:"auth"`
	Intel  *Intel  `json:"intel"`
	Export *Export `json:"export"`
}

type Auth struct {
	JwtKey string `json:"jwt_key"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	Db       int32  `json:"db"`
}

// Intel configures the report generation engine and its collaborators.
type Intel struct {
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Concurrency *Concurrency `json:"concurrency"`
	Log         *Log         `json:"log"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Search struct {
	Provider string   `json:"provider"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type Export struct {
	// OutputDir receives generated PDF files.
	OutputDir string `json:"output_dir"`
	// MarginInches is applied to all four page edges.
	MarginInches float64 `json:"margin_inches"`
	// Dpi controls per-page raster quality.
	Dpi int32 `json:"dpi"`
}
