package mysql

// Schema creates the blob table the MySQL source reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS eatery_blobs (
  name       VARCHAR(255) NOT NULL,
  body       LONGTEXT     NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

// No ORDER BY: enumeration order is the source's business, the catalog sorts.
const listBlobNamesSQL = `SELECT name FROM eatery_blobs`

const getBlobSQL = `SELECT body FROM eatery_blobs WHERE name = ?`
