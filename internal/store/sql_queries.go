package store

const (
	letterColumns = `id, letter_number, letter_date, subject, attachment, content, status, content_hash, qr_payload, created_by, created_at, updated_at`

	createLetter = `INSERT INTO letters (id, letter_number, letter_date, subject, attachment, content, status, created_by, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING ` + letterColumns + `;`

	getLetterByID = `SELECT ` + letterColumns + `
    FROM letters
    WHERE id = $1;`

	// getLetterForUpdate holds the row lock until the enclosing transaction
	// commits, keeping the fingerprinted content and the signed row identical.
	getLetterForUpdate = `SELECT ` + letterColumns + `
    FROM letters
    WHERE id = $1
    FOR UPDATE;`

	// markLetterSigned guards the transition with status = 'draft': under
	// concurrent attempts only one UPDATE matches, the rest see no rows.
	markLetterSigned = `UPDATE letters
    SET status = 'signed', content_hash = $2, qr_payload = $3, updated_at = $4
    WHERE id = $1 AND status = 'draft'
    RETURNING ` + letterColumns + `;`

	deleteDraftLetter = `DELETE FROM letters
    WHERE id = $1 AND status = 'draft';`

	signatureColumns = `id, letter_id, signer_id, signer_name, signed_at, content_hash, ip_address, user_agent`

	createSignature = `INSERT INTO signatures (id, letter_id, signer_id, signer_name, signed_at, content_hash, ip_address, user_agent)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + signatureColumns + `;`

	getSignatureByLetterID = `SELECT ` + signatureColumns + `
    FROM signatures
    WHERE letter_id = $1;`

	userColumns = `id, name, email, role, secret_key_hash, is_active, created_at, updated_at`

	createUser = `INSERT INTO users (id, name, email, role, secret_key_hash, is_active, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	getUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY created_at;`

	deleteUser = `DELETE FROM users
    WHERE id = $1;`

	eventColumns = `id, name, event_date, claim_deadline, template_ref, template_config, created_by, created_at, updated_at`

	createEvent = `INSERT INTO events (id, name, event_date, claim_deadline, template_ref, template_config, created_by, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING ` + eventColumns + `;`

	getEventByID = `SELECT ` + eventColumns + `
    FROM events
    WHERE id = $1;`

	listEvents = `SELECT ` + eventColumns + `
    FROM events
    ORDER BY event_date DESC;`

	// claims go with the event via ON DELETE CASCADE
	deleteEvent = `DELETE FROM events
    WHERE id = $1;`

	claimColumns = `id, event_id, user_id, recipient_name, call_sign, certificate_number, qr_payload, claimed_at`

	createClaim = `INSERT INTO certificate_claims (id, event_id, user_id, recipient_name, call_sign, certificate_number, qr_payload, claimed_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + claimColumns + `;`

	getClaimByID = `SELECT ` + claimColumns + `
    FROM certificate_claims
    WHERE id = $1;`

	listClaimsByEventID = `SELECT ` + claimColumns + `
    FROM certificate_claims
    WHERE event_id = $1
    ORDER BY claimed_at;`

	activityLogColumns = `id, user_id, user_name, action, description, metadata, ip_address, created_at`

	appendActivityLog = `INSERT INTO activity_logs (id, user_id, user_name, action, description, metadata, ip_address, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + activityLogColumns + `;`

	listActivityLogs = `SELECT ` + activityLogColumns + `
    FROM activity_logs
    ORDER BY created_at DESC
    LIMIT $1;`
)
