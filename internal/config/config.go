package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/Garsondee/Tank-Skirmish/internal/sim"
)

// FileName is the config file looked up in the directory passed to Load.
const FileName = "tanks.cfg.json"

// Load sets defaults for every key and merges FileName from configDir over
// them. A missing file is not an error; a malformed one is.
func Load(configDir string) error {
	d := sim.DefaultConfig()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("seed", d.Seed)

	viper.SetDefault("window.width", 960)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.fullscreen", false)

	viper.SetDefault("player.health", d.PlayerHealth)
	viper.SetDefault("player.moveSpeed", d.PlayerMoveSpeed)
	viper.SetDefault("player.turnSpeed", d.PlayerTurnSpeed)
	viper.SetDefault("player.mouseDivisor", d.MouseDivisor)
	viper.SetDefault("player.fireCooldown", d.PlayerFireCooldown)
	viper.SetDefault("player.hitDamage", d.HitDamage)

	viper.SetDefault("enemy.count", d.EnemyCount)
	viper.SetDefault("enemy.health", d.EnemyHealth)
	viper.SetDefault("enemy.speed", d.EnemySpeed)
	viper.SetDefault("enemy.fireCooldown", d.EnemyFireCooldown)
	viper.SetDefault("enemy.scanRange", d.ScanRange)

	viper.SetDefault("projectile.speed", d.ProjectileSpeed)
	viper.SetDefault("projectile.drop", d.ProjectileDrop)
	viper.SetDefault("projectile.muzzleOffset", d.MuzzleOffset)
	viper.SetDefault("projectile.muzzleHeight", d.MuzzleHeight)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Sim builds the simulation tunables from the loaded keys.
func Sim() sim.Config {
	return sim.Config{
		PlayerHealth:       viper.GetInt("player.health"),
		PlayerMoveSpeed:    viper.GetFloat64("player.moveSpeed"),
		PlayerTurnSpeed:    viper.GetFloat64("player.turnSpeed"),
		MouseDivisor:       viper.GetFloat64("player.mouseDivisor"),
		PlayerFireCooldown: viper.GetFloat64("player.fireCooldown"),
		HitDamage:          viper.GetInt("player.hitDamage"),

		EnemyCount:        viper.GetInt("enemy.count"),
		EnemyHealth:       viper.GetInt("enemy.health"),
		EnemySpeed:        viper.GetFloat64("enemy.speed"),
		EnemyFireCooldown: viper.GetFloat64("enemy.fireCooldown"),
		ScanRange:         viper.GetInt("enemy.scanRange"),

		ProjectileSpeed: viper.GetFloat64("projectile.speed"),
		ProjectileDrop:  viper.GetFloat64("projectile.drop"),
		MuzzleOffset:    viper.GetFloat64("projectile.muzzleOffset"),
		MuzzleHeight:    viper.GetFloat64("projectile.muzzleHeight"),

		Seed: viper.GetInt64("seed"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
