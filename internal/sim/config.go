package sim

// Config holds the gameplay tunables. Zero values are not meaningful; start
// from DefaultConfig and override.
type Config struct {
	// Player tank.
	PlayerHealth       int
	PlayerMoveSpeed    float64 // world units per second
	PlayerTurnSpeed    float64 // degrees per second
	MouseDivisor       float64 // mouse pixels per degree of turret yaw
	PlayerFireCooldown float64 // seconds between shots
	HitDamage          int     // damage the player takes per enemy projectile

	// Enemy tanks.
	EnemyCount        int
	EnemyHealth       int
	EnemySpeed        float64
	EnemyFireCooldown float64
	ScanRange         int // sample points swept by the forward sensor

	// Projectiles.
	ProjectileSpeed float64 // horizontal units per second
	ProjectileDrop  float64 // vertical units per second
	MuzzleOffset    float64 // spawn distance ahead of the firing point
	MuzzleHeight    float64 // spawn height above the owner's position

	Seed int64
}

// DefaultConfig returns the tuning used by the shipped game.
func DefaultConfig() Config {
	return Config{
		PlayerHealth:       100,
		PlayerMoveSpeed:    40,
		PlayerTurnSpeed:    80,
		MouseDivisor:       20,
		PlayerFireCooldown: 0.5,
		HitDamage:          50,

		EnemyCount:        3,
		EnemyHealth:       50,
		EnemySpeed:        20,
		EnemyFireCooldown: 1.0,
		ScanRange:         100,

		ProjectileSpeed: 120,
		ProjectileDrop:  1.5,
		MuzzleOffset:    10,
		MuzzleHeight:    1.5,

		Seed: 1,
	}
}
