package config

import (
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"ivsremote/internal/shared/types"
)

// LoadIni overlays the behavior configuration file onto cfg. Keys missing
// from the file keep whatever cfg already holds, so callers can pass a
// default-filled Config and ship a sparse ini file.
func LoadIni(cfg *types.Config, fileName string) error {
	iniFile, err := ini.Load(fileName)
	if err != nil {
		return err
	}
	if err := iniFile.MapTo(cfg); err != nil {
		return err
	}
	applyEnvOverrides(cfg)
	return nil
}

// ApplyEnv applies the environment overrides without an ini file, for
// setups that configure the client purely through the environment.
func ApplyEnv(cfg *types.Config) {
	applyEnvOverrides(cfg)
}

func applyEnvOverrides(cfg *types.Config) {
	overrideFromEnvString(&cfg.EndpointConf.Host, "IVS_RCMD_HOST")
	overrideFromEnvInt(&cfg.EndpointConf.Port, "IVS_RCMD_PORT")
	overrideFromEnvString(&cfg.ClientConf.Command, "IVS_RCMD_COMMAND")
}

func overrideFromEnvString(target *string, envName string) {
	if envValue := os.Getenv(envName); envValue != "" {
		*target = envValue
	}
}

func overrideFromEnvInt(target *int, envName string) {
	envValue := os.Getenv(envName)
	if envValue == "" {
		return
	}
	if intValue, err := strconv.Atoi(envValue); err == nil {
		*target = intValue
	}
}
