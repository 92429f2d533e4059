package handlers

import "net/http"

// dashboardHTML is the single-page team form. It submits a report job,
// follows its status over the job WebSocket, and renders the finished
// report.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
    <title>NHL Betting Odds Dashboard</title>
    <style>
        body { background-color: #000; color: #fff; font-family: Arial, sans-serif; }
        .container { max-width: 720px; margin: auto; padding: 20px; }
        .form-group { margin-bottom: 20px; }
        label { display: block; margin-bottom: 5px; }
        input[type="text"] { width: 100%; padding: 10px; margin-bottom: 10px; }
        input[type="submit"] { padding: 10px 20px; background-color: #00f; color: #fff; border: none; cursor: pointer; }
        input[type="submit"]:hover { background-color: #009; }
        #status { margin-top: 10px; color: #8cf; }
        pre { background-color: #111; padding: 15px; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <h2>NHL Team Name Input</h2>
        <form id="teamForm">
            <div class="form-group">
                <label for="teamName">Enter NHL Team Name:</label>
                <input type="text" id="teamName" name="teamName" list="teams" required>
                <datalist id="teams"></datalist>
            </div>
            <input type="submit" value="Submit">
        </form>
        <div id="status"></div>
        <pre id="report"></pre>
    </div>
    <script>
        fetch('/api/v1/teams').then(r => r.json()).then(data => {
            const list = document.getElementById('teams');
            (data.teams || []).forEach(t => {
                const opt = document.createElement('option');
                opt.value = t.name;
                list.appendChild(opt);
            });
        });

        document.getElementById('teamForm').addEventListener('submit', async (e) => {
            e.preventDefault();
            const team = document.getElementById('teamName').value;
            const status = document.getElementById('status');
            const report = document.getElementById('report');
            report.textContent = '';

            const res = await fetch('/api/v1/reports', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({team: team})
            });
            if (!res.ok) {
                status.textContent = 'Failed to queue report.';
                return;
            }
            const job = await res.json();
            status.textContent = 'Job ' + job.id + ': ' + job.status;

            const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            const ws = new WebSocket(proto + location.host + '/ws/reports/' + job.id);
            ws.onmessage = async (msg) => {
                const update = JSON.parse(msg.data);
                status.textContent = 'Job ' + update.job_id + ': ' + update.status;
                if (update.status === 'done' || update.status === 'failed') {
                    ws.close();
                    const jr = await fetch('/api/v1/reports/' + job.id);
                    const done = await jr.json();
                    report.textContent = done.report || done.error || '';
                }
            };
        });
    </script>
</body>
</html>
`

// Dashboard serves the team-name form page
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(dashboardHTML))
}
