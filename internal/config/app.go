package config

type AppConfig struct {
	Server   ServerConfig
	Log      LogConfig
	Game     GameConfig
	Announce AnnounceConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	gameCfg, err := LoadGame()
	if err != nil {
		return AppConfig{}, err
	}
	announceCfg, err := LoadAnnounce()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:   serverCfg,
		Log:      logCfg,
		Game:     gameCfg,
		Announce: announceCfg,
	}, nil
}
