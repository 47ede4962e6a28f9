package spacewar

import "github.com/vovakirdan/spacewar/internal/core"

// resolveBulletHits applies bullet damage to enemies.
// Each bullet resolves against at most the first colliding enemy in
// collection order. Hit bullets are removed; enemies at zero HP are removed
// and returned in destroyed.
func resolveBulletHits(bullets []Bullet, enemies []Enemy) (remainingBullets []Bullet, remainingEnemies []Enemy, destroyed []Enemy) {
	remainingBullets = bullets[:0]
	for _, b := range bullets {
		idx := firstHit(b.Rect, enemies)
		if idx < 0 {
			remainingBullets = append(remainingBullets, b)
			continue
		}

		enemies[idx].HP--
		if enemies[idx].HP <= 0 {
			destroyed = append(destroyed, enemies[idx])
			enemies = append(enemies[:idx], enemies[idx+1:]...)
		}
	}
	return remainingBullets, enemies, destroyed
}

// firstHit returns the index of the first enemy overlapping r, or -1.
func firstHit(r core.Rect, enemies []Enemy) int {
	for i := range enemies {
		if r.Intersects(enemies[i].Rect) {
			return i
		}
	}
	return -1
}

// playerCollides reports whether the player overlaps any enemy.
func playerCollides(p core.Rect, enemies []Enemy) bool {
	return firstHit(p, enemies) >= 0
}
