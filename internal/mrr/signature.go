package mrr

import "bytes"

// Signature is the literal every MRR file starts with.
const Signature = "MRR (MechSim Robot Representation)"

// checkSignature consumes the signature, or nothing if the prefix differs.
// A buffer shorter than the signature is a mismatch, not an EOF.
func (c *cursor) checkSignature() error {
	b, err := c.peek(len(Signature))
	if err != nil || !bytes.Equal(b, []byte(Signature)) {
		return ErrSignatureMismatch
	}
	_, err = c.take(len(Signature))
	return err
}
