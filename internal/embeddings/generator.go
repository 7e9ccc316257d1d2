// ABOUTME: Derives a coffee's flavor embedding from its four raw attribute scores.
// ABOUTME: Pure function of the attributes; persisting the result is the caller's job.
package embeddings

import "github.com/2389-research/brewmatch/internal/models"

// GenerateEmbedding maps acidity, body, sweetness and bitterness (0-10, unset = 0)
// to [acidity, body, sweetness, bitterness, fruity, chocolatey, nutty, floral].
// Every component lies in [0,1] for inputs in range; nothing is clamped.
func GenerateEmbedding(c *models.Coffee) Vector {
	acidity := float64(models.AttributeValue(c.Acidity))
	body := float64(models.AttributeValue(c.Body))
	sweetness := float64(models.AttributeValue(c.Sweetness))
	bitterness := float64(models.AttributeValue(c.Bitterness))

	return Vector{
		float32(acidity / 10.0),
		float32(body / 10.0),
		float32(sweetness / 10.0),
		float32(bitterness / 10.0),
		float32((acidity*0.7 + sweetness*0.3) / 10.0),
		float32((body*0.5 + bitterness*0.5) / 10.0),
		float32((body*0.6 + sweetness*0.4) / 10.0),
		float32((acidity*0.8 + (10-body)*0.2) / 10.0),
	}
}
